//go:build unit

package payment_test

import (
	"testing"
	"time"

	"playa-admin/internal/domain/payment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	occ := uuid.New()
	bill := uuid.New()

	cases := []struct {
		name         string
		occupationID *uuid.UUID
		billID       *uuid.UUID
		want         payment.Kind
	}{
		{name: "bill reference is ABONO", billID: &bill, want: payment.KindSubscription},
		{name: "occupation reference is OCUPACION", occupationID: &occ, want: payment.KindOccupation},
		{name: "no reference is OTRO", want: payment.KindOther},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, payment.Classify(tc.occupationID, tc.billID))
		})
	}
}

func TestNewPayment(t *testing.T) {
	now := time.Now()
	occ := uuid.New()
	bill := uuid.New()

	t.Run("kind follows the reference", func(t *testing.T) {
		p, err := payment.New(uuid.New(), uuid.New(), 500, now, &occ, nil)
		require.NoError(t, err)
		assert.Equal(t, payment.KindOccupation, p.Kind())

		p, err = payment.New(uuid.New(), uuid.New(), 500, now, nil, &bill)
		require.NoError(t, err)
		assert.Equal(t, payment.KindSubscription, p.Kind())

		p, err = payment.New(uuid.New(), uuid.New(), 500, now, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, payment.KindOther, p.Kind())
	})

	t.Run("both references rejected", func(t *testing.T) {
		_, err := payment.New(uuid.New(), uuid.New(), 500, now, &occ, &bill)
		assert.ErrorIs(t, err, payment.ErrAmbiguousRef)
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		_, err := payment.New(uuid.New(), uuid.New(), -1, now, nil, nil)
		assert.ErrorIs(t, err, payment.ErrNegativeAmount)
	})
}
