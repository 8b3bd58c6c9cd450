package easydb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeIdentifier(t *testing.T) {
	valid := []string{
		"users",
		"Users",
		"_private",
		"user_accounts2",
		"public.users",
	}

	for _, name := range valid {
		got, err := sanitizeIdentifier(name)
		require.NoError(t, err, "identifier: %q", name)
		require.Equal(t, name, got)
	}

	invalid := []string{
		"",
		"2users",
		"users; DROP TABLE users",
		"users--",
		`users"`,
		"user name",
		"users.accounts.extra",
		".users",
		"users.",
		"таблица",
	}

	for _, name := range invalid {
		_, err := sanitizeIdentifier(name)
		require.Error(t, err, "identifier: %q", name)
	}
}
