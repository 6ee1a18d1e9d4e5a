// Package account はアカウントのインメモリレジストリを提供する。
//
// レジストリはプロセス起動時に静的なソース（プロパティファイルまたは
// SQLiteテーブル）から一度だけ構築され、以後は変更されない。
// ソースが存在しない・読み取れない場合は既定の admin / user アカウントで構築し、
// 内容が解析できない場合はエラーとする。
package account
