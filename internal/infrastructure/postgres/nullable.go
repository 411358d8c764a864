package postgres

import (
	"strings"

	"github.com/google/uuid"
)

// nullString は空文字を NULL として扱う
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern は部分一致検索用の ILIKE パターンを返す
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// isUUID は UUID 列に渡せる文字列かを返す。不正な値は該当なしとして扱う
// PostgreSQL の uuid 入力に合わせてハイフン区切りの36文字のみ許可する
func isUUID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// prefixColumns はカンマ区切りの列名にテーブル別名を付ける
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
