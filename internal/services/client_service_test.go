package services

import (
	"context"
	"regexp"
	"testing"

	"github.com/mroshb/raffle_api/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestCreateClient(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	client, err := env.clients.CreateClient(ctx, ClientInput{Name: "Acme <script>x</script>", Email: "Ops@Acme.io", Website: "https://acme.io"})
	require.NoError(t, err)
	require.Regexp(t, regexp.MustCompile(`^ACM\d{3}$`), client.UniqueID)
	require.Equal(t, "Acme", client.Name)
	require.Equal(t, "ops@acme.io", client.Email)
	require.False(t, client.IsCookieApproved)

	_, err = env.clients.CreateClient(ctx, ClientInput{Name: "Other", Email: "ops@acme.io", Website: "https://other.io"})
	appErr, ok := errors.As(err)
	require.True(t, ok)
	require.Equal(t, "Client with this email already exists.", appErr.Message)

	_, err = env.clients.CreateClient(ctx, ClientInput{Name: "Other"})
	appErr, ok = errors.As(err)
	require.True(t, ok)
	require.Equal(t, "All fields are required.", appErr.Message)
}

func TestCreateClient_RetriesCodeCollisions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	codes := []string{"ACM001", "ACM001", "ACM002"}
	env.clients.generate = func(string) string {
		code := codes[0]
		codes = codes[1:]
		return code
	}

	first, err := env.clients.CreateClient(ctx, ClientInput{Name: "Acme", Email: "a@acme.io", Website: "acme.io"})
	require.NoError(t, err)
	require.Equal(t, "ACM001", first.UniqueID)

	second, err := env.clients.CreateClient(ctx, ClientInput{Name: "Acme", Email: "b@acme.io", Website: "acme.io"})
	require.NoError(t, err)
	require.Equal(t, "ACM002", second.UniqueID)
}

func TestCreateClient_GivesUpAfterRepeatedCollisions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.clients.generate = func(string) string { return "ACM001" }

	_, err := env.clients.CreateClient(ctx, ClientInput{Name: "Acme", Email: "a@acme.io", Website: "acme.io"})
	require.NoError(t, err)

	_, err = env.clients.CreateClient(ctx, ClientInput{Name: "Acme", Email: "b@acme.io", Website: "acme.io"})
	require.True(t, errors.HasCode(err, errors.ErrCodeInternalError))
}

func TestCookieApproval(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	client, err := env.clients.CreateClient(ctx, ClientInput{Name: "Acme", Email: "a@acme.io", Website: "acme.io"})
	require.NoError(t, err)

	accepted, err := env.clients.SetCookieApproval(ctx, client.UniqueID, true)
	require.NoError(t, err)
	require.True(t, accepted.IsCookieApproved)

	denied, err := env.clients.SetCookieApproval(ctx, client.UniqueID, false)
	require.NoError(t, err)
	require.False(t, denied.IsCookieApproved)

	tests := []struct {
		name     string
		uniqueID string
		message  string
	}{
		{"empty id", "  ", "Client ID is required."},
		{"unknown id", "ZZZ999", "Client not found."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.clients.SetCookieApproval(ctx, tt.uniqueID, true)
			appErr, ok := errors.As(err)
			require.True(t, ok)
			require.Equal(t, tt.message, appErr.Message)
		})
	}
}

func TestUpdateAndDeleteClient(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	client, err := env.clients.CreateClient(ctx, ClientInput{Name: "Acme", Email: "a@acme.io", Website: "acme.io"})
	require.NoError(t, err)

	updated, err := env.clients.UpdateClient(ctx, client.ID, ClientInput{Name: "Acme Ltd", Email: "a@acme.io", Website: "acme.com"})
	require.NoError(t, err)
	require.Equal(t, "Acme Ltd", updated.Name)
	require.Equal(t, client.UniqueID, updated.UniqueID)

	require.NoError(t, env.clients.DeleteClient(ctx, client.ID))
	err = env.clients.DeleteClient(ctx, client.ID)
	appErr, ok := errors.As(err)
	require.True(t, ok)
	require.Equal(t, "Client not found.", appErr.Message)
}
