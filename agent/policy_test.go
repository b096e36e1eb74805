package agent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRetryPolicy(t *testing.T) {
	policy := DefaultRetryPolicy()

	assert.Equal(t, 3, policy.MaxRetries)
	require.NoError(t, policy.Validate())

	assert.True(t, policy.IsRetryable(ClassificationTimeout))
	assert.True(t, policy.IsRetryable(ClassificationNetwork))
	assert.True(t, policy.IsRetryable(ClassificationTemporary))
	assert.True(t, policy.IsRetryable(ClassificationRateLimit))

	assert.False(t, policy.IsRetryable(ClassificationValidation))
	assert.False(t, policy.IsRetryable(ClassificationCircuitBreaker))
	assert.False(t, policy.IsRetryable(ClassificationUnknown))
}

func TestNoRetryPolicy(t *testing.T) {
	policy := NoRetryPolicy()

	assert.Zero(t, policy.MaxRetries)
	assert.False(t, policy.IsRetryable(ClassificationTimeout))
	require.NoError(t, policy.Validate())
}

func TestRetryPolicy_ExplicitWhitelist(t *testing.T) {
	policy := RetryPolicy{
		MaxRetries:        1,
		BackoffMultiplier: 1.0,
		RetryableErrors:   []Classification{ClassificationUnknown},
	}

	assert.True(t, policy.IsRetryable(ClassificationUnknown))
	assert.False(t, policy.IsRetryable(ClassificationTimeout))
}

func TestRetryPolicy_Validate(t *testing.T) {
	assert.Error(t, RetryPolicy{MaxRetries: -1}.Validate())
	assert.Error(t, RetryPolicy{InitialDelay: -time.Second}.Validate())
	assert.Error(t, RetryPolicy{MaxDelay: -time.Second}.Validate())
	assert.Error(t, RetryPolicy{InitialDelay: time.Second, MaxDelay: time.Millisecond}.Validate())

	assert.NoError(t, RetryPolicy{InitialDelay: time.Second}.Validate())
}
