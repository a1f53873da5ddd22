package leadcapture

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadgenie/leadgenie/internal/domain"
)

// recorder captures persist calls.
type recorder struct {
	calls int
	name  string
	email string
	phone string
	err   error
}

func (r *recorder) persist(ctx context.Context, name, email, phone string) error {
	r.calls++
	r.name = name
	r.email = email
	r.phone = phone
	return r.err
}

func TestMachine_Arm(t *testing.T) {
	m := New(nil)
	assert.Equal(t, StateInactive, m.State())
	assert.False(t, m.InFlow())

	require.NoError(t, m.Arm())
	assert.Equal(t, StateAskName, m.State())
	assert.True(t, m.InFlow())

	err := m.Arm()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.InvalidTransitionError("")))
}

func TestMachine_FullSubmitFlow(t *testing.T) {
	rec := &recorder{}
	m := New(rec.persist)
	ctx := context.Background()

	require.NoError(t, m.Arm())
	require.NoError(t, m.Submit(ctx, "Jane Doe"))
	assert.Equal(t, StateAskEmail, m.State())

	require.NoError(t, m.Submit(ctx, "jane@example.com"))
	assert.Equal(t, StateAskPhone, m.State())

	require.NoError(t, m.Submit(ctx, "+1 555 000 1111"))
	assert.Equal(t, StateCaptured, m.State())
	assert.True(t, m.Captured())
	assert.False(t, m.InFlow())

	assert.Equal(t, 1, rec.calls)
	assert.Equal(t, "Jane Doe", rec.name)
	assert.Equal(t, "jane@example.com", rec.email)
	assert.Equal(t, "+1 555 000 1111", rec.phone)
}

func TestMachine_FullSkipFlow(t *testing.T) {
	rec := &recorder{}
	m := New(rec.persist)
	ctx := context.Background()

	require.NoError(t, m.Arm())
	require.NoError(t, m.Skip(ctx))
	require.NoError(t, m.Skip(ctx))
	require.NoError(t, m.Skip(ctx))

	assert.True(t, m.Captured())
	assert.Equal(t, 1, rec.calls)
	assert.Equal(t, domain.PlaceholderName, rec.name)
	assert.Equal(t, domain.PlaceholderEmail, rec.email)
	assert.Equal(t, domain.PlaceholderPhone, rec.phone)
}

func TestMachine_MixedSubmitAndSkip(t *testing.T) {
	rec := &recorder{}
	m := New(rec.persist)
	ctx := context.Background()

	require.NoError(t, m.Arm())
	require.NoError(t, m.Submit(ctx, "Jane"))
	require.NoError(t, m.Skip(ctx))
	require.NoError(t, m.Submit(ctx, ""))

	assert.True(t, m.Captured())
	assert.Equal(t, 1, rec.calls)
	assert.Equal(t, "Jane", rec.name)
	assert.Equal(t, domain.PlaceholderEmail, rec.email)
	assert.Equal(t, domain.PlaceholderPhone, rec.phone, "empty phone falls back to placeholder")
}

func TestMachine_Submit_EmptyNameRejected(t *testing.T) {
	m := New(nil)
	require.NoError(t, m.Arm())

	err := m.Submit(context.Background(), "   ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ValidationError("", "")))
	assert.Equal(t, StateAskName, m.State(), "state unchanged after validation failure")
}

func TestMachine_Submit_InvalidEmailRejected(t *testing.T) {
	m := New(nil)
	require.NoError(t, m.Arm())
	require.NoError(t, m.Submit(context.Background(), "Jane"))

	err := m.Submit(context.Background(), "not-an-email")
	require.Error(t, err)
	assert.Equal(t, StateAskEmail, m.State())

	// A valid address still works afterwards.
	require.NoError(t, m.Submit(context.Background(), "jane@example.com"))
	assert.Equal(t, StateAskPhone, m.State())
}

func TestMachine_PersistErrorKeepsState(t *testing.T) {
	rec := &recorder{err: errors.New("store down")}
	m := New(rec.persist)
	ctx := context.Background()

	require.NoError(t, m.Arm())
	require.NoError(t, m.Skip(ctx))
	require.NoError(t, m.Skip(ctx))

	err := m.Submit(ctx, "555 0100 2222")
	require.Error(t, err)
	assert.Equal(t, StateAskPhone, m.State(), "failed persist keeps the phone step open")
	assert.False(t, m.Captured())

	// Retry after the store recovers.
	rec.err = nil
	require.NoError(t, m.Submit(ctx, "555 0100 2222"))
	assert.True(t, m.Captured())
	assert.Equal(t, 2, rec.calls)
}

func TestMachine_ActionsOutsideFlow(t *testing.T) {
	m := New(nil)

	err := m.Submit(context.Background(), "Jane")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.InvalidTransitionError("")))

	err = m.Skip(context.Background())
	require.Error(t, err)

	require.NoError(t, m.Arm())
	require.NoError(t, m.Skip(context.Background()))
	require.NoError(t, m.Skip(context.Background()))
	require.NoError(t, m.Skip(context.Background()))
	require.True(t, m.Captured())

	// Terminal state refuses further input.
	err = m.Submit(context.Background(), "again")
	require.Error(t, err)
	err = m.Skip(context.Background())
	require.Error(t, err)
}

func TestMachine_Reset(t *testing.T) {
	rec := &recorder{}
	m := New(rec.persist)

	require.NoError(t, m.Arm())
	require.NoError(t, m.Submit(context.Background(), "Jane"))

	m.Reset()
	assert.Equal(t, StateInactive, m.State())

	// The cleared machine can run the whole flow again from scratch.
	require.NoError(t, m.Arm())
	require.NoError(t, m.Skip(context.Background()))
	require.NoError(t, m.Skip(context.Background()))
	require.NoError(t, m.Skip(context.Background()))
	assert.Equal(t, domain.PlaceholderName, rec.name, "partial name from before the reset is gone")
}

func TestState_Prompt(t *testing.T) {
	assert.Equal(t, "May I know your name?", StateAskName.Prompt())
	assert.Equal(t, "What's your email address?", StateAskEmail.Prompt())
	assert.Equal(t, "And your phone number?", StateAskPhone.Prompt())
	assert.Empty(t, StateInactive.Prompt())
	assert.Empty(t, StateCaptured.Prompt())
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"a@b.com", true},
		{"jane.doe@sub.example.co", true},
		{"  padded@example.com  ", true},
		{"abc", false},
		{"", false},
		{"no-domain@", false},
		{"@example.com", true},
		{"dot.before@at", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateEmail(tt.email))
		})
	}
}
