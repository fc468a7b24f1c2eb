package logx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnonymizeIP(t *testing.T) {
	cases := map[string]string{
		"203.0.113.57:4312":         "203.0.113.0",
		"203.0.113.57":              "203.0.113.0",
		"127.0.0.1:9000":            "127.0.0.1",
		"[2001:db8:1:2:3:4:5:6]:80": "2001:db8:1:2::",
		"not-an-ip":                 "unknown_ip",
	}

	for in, want := range cases {
		assert.Equal(t, want, anonymizeIP(in), in)
	}
}

func TestCheckFields(t *testing.T) {
	assert.Equal(t, []any{"k", 1}, checkFields("Info", []any{"k", 1}))
	assert.Nil(t, checkFields("Info", []any{"dangling"}))
}
