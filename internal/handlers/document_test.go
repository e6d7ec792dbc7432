package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentDisposition(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "report.pdf", "attachment; filename*=UTF-8''report.pdf"},
		{"spaces", "final report.pdf", "attachment; filename*=UTF-8''final%20report.pdf"},
		{"non ascii", "見積書.xlsx", "attachment; filename*=UTF-8''%E8%A6%8B%E7%A9%8D%E6%9B%B8.xlsx"},
		{"quotes", `a"b.txt`, "attachment; filename*=UTF-8''a%22b.txt"},
		{"empty", "", "attachment; filename*=UTF-8''download"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContentDisposition(tt.in))
		})
	}
}
