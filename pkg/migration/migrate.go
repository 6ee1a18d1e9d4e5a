package migration

import (
	"cmp"
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log"
	"path"
	"slices"
	"strconv"
	"strings"
)

// upSuffix は適用対象のファイル名の接尾辞。
const upSuffix = ".up.sql"

// Run はfsysのdir配下にあるマイグレーションを番号順に適用し、今回適用した件数を返す。
// 適用済みの番号はスキップする。番号が重複している場合は何も適用せずにエラーを返す。
func Run(ctx context.Context, db *sql.DB, fsys fs.FS, dir string) (int, error) {
	steps, err := collect(fsys, dir)
	if err != nil {
		return 0, fmt.Errorf("マイグレーションファイルの収集に失敗: %w", err)
	}

	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME NOT NULL DEFAULT (datetime('now'))
		)
	`); err != nil {
		return 0, fmt.Errorf("マイグレーション管理テーブルの作成に失敗: %w", err)
	}

	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return 0, fmt.Errorf("適用済みバージョンの取得に失敗: %w", err)
	}

	count := 0
	for _, s := range steps {
		if applied[s.version] {
			continue
		}
		if err := s.apply(ctx, db, fsys); err != nil {
			return count, fmt.Errorf("マイグレーション %06d の適用に失敗: %w", s.version, err)
		}
		log.Printf("[Migration] %06d_%s を適用しました", s.version, s.name)
		count++
	}
	return count, nil
}

// step は1つのマイグレーションファイル。
type step struct {
	version int
	name    string
	path    string
}

// collect はdir配下のup.sqlファイルを番号順に並べて返す。
// 番号として解釈できないファイルは無視する。
func collect(fsys fs.FS, dir string) ([]step, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	var steps []step
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), upSuffix) {
			continue
		}
		prefix, name, ok := strings.Cut(strings.TrimSuffix(entry.Name(), upSuffix), "_")
		if !ok {
			continue
		}
		version, err := strconv.Atoi(prefix)
		if err != nil {
			continue
		}
		steps = append(steps, step{version: version, name: name, path: path.Join(dir, entry.Name())})
	}

	slices.SortFunc(steps, func(a, b step) int { return cmp.Compare(a.version, b.version) })
	for i := 1; i < len(steps); i++ {
		if steps[i].version == steps[i-1].version {
			return nil, fmt.Errorf("バージョン %06d が重複しています: %s, %s", steps[i].version, steps[i-1].path, steps[i].path)
		}
	}
	return steps, nil
}

// appliedVersions は適用済みのバージョンを返す。
func appliedVersions(ctx context.Context, db *sql.DB) (map[int]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	applied := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

// apply はSQLの実行とバージョンの記録を1つのトランザクションで行う。
func (s step) apply(ctx context.Context, db *sql.DB, fsys fs.FS) error {
	content, err := fs.ReadFile(fsys, s.path)
	if err != nil {
		return fmt.Errorf("ファイル読み込みに失敗: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("SQL実行に失敗: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", s.version); err != nil {
		return fmt.Errorf("バージョン記録に失敗: %w", err)
	}
	return tx.Commit()
}
