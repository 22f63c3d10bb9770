package record

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBatch_StatusRule(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		updated  int
		failed   int
		expected Status
	}{
		{"no entries at all", 0, 0, StatusSuccess},
		{"all entries updated", 3, 0, StatusSuccess},
		{"all entries failed", 0, 3, StatusError},
		{"single failure", 0, 1, StatusError},
		{"mixed outcome", 2, 1, StatusPartialSuccess},
		{"one of each", 1, 1, StatusPartialSuccess},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var b Batch
			for j := 0; j < tc.updated; j++ {
				b.Updated()
			}
			for i := 0; i < tc.failed; i++ {
				b.Failf("entry %d failed", i)
			}

			res := b.Result()
			require.Equal(t, tc.expected, res.Status)
			require.Equal(t, tc.updated, res.UpdatedCount)
			require.Equal(t, tc.failed, res.Errors)
			require.Len(t, res.Messages, tc.failed)
		})
	}
}

func TestBatch_MessagesKeepOrder(t *testing.T) {
	t.Parallel()

	var b Batch
	b.Failf("first: %s", "a")
	b.Updated()
	b.Failf("second: %s", "b")

	res := b.Result()
	require.Equal(t, []string{"first: a", "second: b"}, res.Messages)
}
