package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func parse(t *testing.T, v interface{}) *schema.Schema {
	t.Helper()
	s, err := schema.Parse(v, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)
	return s
}

func TestSubscriptionRejectsSelf(t *testing.T) {
	checks := parse(t, &Subscription{}).ParseCheckConstraints()

	chk, ok := checks["chk_subscriptions_not_self"]
	require.True(t, ok)
	assert.Equal(t, "subscriber_id <> channel_id", chk.Constraint)
}
