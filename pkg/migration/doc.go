// Package migration はSQLiteデータベースのスキーマを番号付きSQLファイルで管理する。
//
// ファイル名は 000001_description.up.sql の形式とし、番号順に1回だけ適用する。
// 適用済みの番号は schema_migrations テーブルで追跡する。
package migration
