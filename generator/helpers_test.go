package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPascalCase(t *testing.T) {
	cases := map[string]string{
		"":          "",
		"post":      "Post",
		"user_name": "UserName",
		"user_id":   "UserID",
		"api_key":   "APIKey",
		"html_body": "HTMLBody",
		"userName":  "UserName",
		"Already":   "Already",
	}
	for in, want := range cases {
		assert.Equal(t, want, PascalCase(in), "PascalCase(%q)", in)
	}
}

func TestCamelCase(t *testing.T) {
	cases := map[string]string{
		"":           "",
		"user_name":  "userName",
		"created_at": "createdAt",
		"UserName":   "userName",
		"post":       "post",
	}
	for in, want := range cases {
		assert.Equal(t, want, CamelCase(in), "CamelCase(%q)", in)
	}
}

func TestSnakeCase(t *testing.T) {
	cases := map[string]string{
		"":           "",
		"Post":       "post",
		"UserName":   "user_name",
		"userName":   "user_name",
		"HTTPServer": "http_server",
		"already_ok": "already_ok",
	}
	for in, want := range cases {
		assert.Equal(t, want, SnakeCase(in), "SnakeCase(%q)", in)
	}
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Created At", Title("created at"))
	assert.Equal(t, "Title", Title("title"))
	assert.Equal(t, "", Title(""))
}

func TestPluralize(t *testing.T) {
	cases := map[string]string{
		"post":     "posts",
		"box":      "boxes",
		"branch":   "branches",
		"dish":     "dishes",
		"category": "categories",
		"day":      "days",
		"hero":     "heroes",
		"photo":    "photos",
		"leaf":     "leaves",
		"knife":    "knives",
		"person":   "people",
		"child":    "children",
		"Person":   "People",
	}
	for in, want := range cases {
		assert.Equal(t, want, Pluralize(in), "Pluralize(%q)", in)
	}
}
