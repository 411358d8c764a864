package event

import (
	"regexp"
	"strings"
)

const defaultSlug = "event"

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9_\s-]`)
	slugWhitespace   = regexp.MustCompile(`\s+`)
	slugHyphens      = regexp.MustCompile(`-+`)
)

// GenerateSlug はタイトルから URL 用のスラッグを生成する
// 英数字・アンダースコア・ハイフンのみを残し、空になった場合は "event" を返す
func GenerateSlug(title string) string {
	s := strings.ToLower(title)
	s = slugInvalidChars.ReplaceAllString(s, "")
	s = slugWhitespace.ReplaceAllString(s, "-")
	s = slugHyphens.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return defaultSlug
	}
	return s
}
