package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("ATS_TEST_SET", "value")

	assert.Equal(t, "value", GetEnv("ATS_TEST_SET"))
	assert.Equal(t, "value", GetEnv("ATS_TEST_SET", "fallback"))
	assert.Equal(t, "fallback", GetEnv("ATS_TEST_UNSET", "fallback"))
	assert.Equal(t, "", GetEnv("ATS_TEST_UNSET"))
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("ATS_TEST_TRUE", "true")
	t.Setenv("ATS_TEST_ONE", "1")
	t.Setenv("ATS_TEST_JUNK", "not-a-bool")

	assert.True(t, GetEnvBool("ATS_TEST_TRUE", false))
	assert.True(t, GetEnvBool("ATS_TEST_ONE", false))
	assert.True(t, GetEnvBool("ATS_TEST_JUNK", true), "unparsable values fall back to the default")
	assert.False(t, GetEnvBool("ATS_TEST_MISSING", false))
	assert.True(t, GetEnvBool("ATS_TEST_MISSING", true))
}

func TestLoadEnvCookieSecure(t *testing.T) {
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("RAILWAY_ENVIRONMENT", "test")

	cfg := LoadEnv()
	assert.True(t, cfg.CookieSecure)
}
