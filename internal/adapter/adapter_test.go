package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeTLSConfig(t *testing.T) {
	t.Run("MissingCA", func(t *testing.T) {
		dir := t.TempDir()
		_, err := MakeTLSConfig(
			filepath.Join(dir, "ca.pem"),
			filepath.Join(dir, "cert.pem"),
			filepath.Join(dir, "key.pem"),
		)
		assert.Error(t, err)
	})

	t.Run("InvalidCA", func(t *testing.T) {
		dir := t.TempDir()
		ca := filepath.Join(dir, "ca.pem")
		require.NoError(t, os.WriteFile(ca, []byte("not a pem"), 0o600))

		_, err := MakeTLSConfig(
			ca, filepath.Join(dir, "cert.pem"), filepath.Join(dir, "key.pem"),
		)
		assert.ErrorIs(t, err, ErrInvalidCA)
	})
}
