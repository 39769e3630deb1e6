package services

import (
	"context"
	"testing"

	"github.com/AleeDe/nafaverse/internal/client/client"
	"github.com/AleeDe/nafaverse/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactSubmit(t *testing.T) {
	fc := &fakeClient{}
	svc := NewContactService(fc)

	require.NoError(t, svc.Submit(context.Background(), "Ali", "ali@x.pk", " Hello "))
	assert.Equal(t, client.ContactRequest{Name: "Ali", Email: "ali@x.pk", Message: "Hello"}, fc.LastContact)
}

func TestContactSubmit_Validation(t *testing.T) {
	fc := &fakeClient{}
	svc := NewContactService(fc)

	for _, in := range [][3]string{
		{"", "ali@x.pk", "hi"},
		{"Ali", "ali", "hi"},
		{"Ali", "ali@x.pk", "  "},
	} {
		require.ErrorIs(t, svc.Submit(context.Background(), in[0], in[1], in[2]), common.ErrValidation, "%v", in)
	}
	assert.Zero(t, fc.calls)
}

func TestContactSubmit_NetworkError(t *testing.T) {
	fc := &fakeClient{ContactErr: common.ErrUnavailable}
	err := NewContactService(fc).Submit(context.Background(), "Ali", "ali@x.pk", "hi")
	assert.Equal(t, common.KindNetwork, common.KindOf(err))
}
