package profile

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kokostudy/koko/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(store.DriverSQLite, "file:profile_"+name+"?mode=memory&cache=shared", store.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewService("u1", st.ProfileRepo(), zap.NewNop())
}

func TestParseGender(t *testing.T) {
	tests := []struct {
		in      string
		want    Gender
		wantErr bool
	}{
		{"female", Female, false},
		{" Male ", Male, false},
		{"FEMALE", Female, false},
		{"other", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseGender(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidGender, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestLoadCreatesDefault(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	p, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Profile{UserID: "u1", Gender: Female}, p)
	assert.Equal(t, "friend", p.Greeting())

	again, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, p, again)
}

func TestSetGenderAndName(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	p, err := svc.SetGender(ctx, Male)
	require.NoError(t, err)
	assert.Equal(t, Male, p.Gender)

	p, err = svc.SetDisplayName(ctx, "  Sam ")
	require.NoError(t, err)
	assert.Equal(t, "Sam", p.DisplayName)
	assert.Equal(t, Male, p.Gender, "name change keeps gender")

	loaded, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, p, loaded)

	_, err = svc.SetGender(ctx, Gender("robot"))
	assert.ErrorIs(t, err, ErrInvalidGender)
}
