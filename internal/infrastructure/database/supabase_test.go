package database

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSupabaseClient_環境変数未設定ならエラー(t *testing.T) {
	t.Run("SUPABASE_URLなし", func(t *testing.T) {
		t.Setenv("SUPABASE_URL", "")
		t.Setenv("SUPABASE_ANON_KEY", "dummy-key")

		_, err := NewSupabaseClient()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "SUPABASE_URL環境変数が設定されていません")
	})

	t.Run("SUPABASE_ANON_KEYなし", func(t *testing.T) {
		t.Setenv("SUPABASE_URL", "https://example.supabase.co")
		t.Setenv("SUPABASE_ANON_KEY", "")

		_, err := NewSupabaseClient()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "SUPABASE_ANON_KEY環境変数が設定されていません")
	})
}

func TestSupabaseClientHealthCheck_未初期化ならエラー(t *testing.T) {
	client := &SupabaseClient{}
	assert.Error(t, client.HealthCheck())
}

func TestSupabaseClientHealthCheck_実DB(t *testing.T) {
	if os.Getenv("SUPABASE_URL") == "" || os.Getenv("SUPABASE_ANON_KEY") == "" {
		t.Skip("Supabase認証情報が未設定のためスキップ")
	}

	client, err := NewSupabaseClient()
	require.NoError(t, err)

	assert.NoError(t, client.HealthCheck(), "poisテーブルへの疎通確認")
}
