package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelp_topics(t *testing.T) {
	t.Parallel()

	for topic := range _helpTopics {
		topic := topic
		t.Run(string(topic), func(t *testing.T) {
			t.Parallel()

			var sb strings.Builder
			require.NoError(t, topic.Write(&sb))
			assert.NotEmpty(t, sb.String())
		})
	}
}

func TestHelp_unknownTopic(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	err := Help("not-a-topic").Write(&sb)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not-a-topic")
	assert.Contains(t, err.Error(), "demos", "error should list valid topics")
}

func TestHelp_noHelp(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	require.NoError(t, NoHelp.Write(&sb))
	assert.Empty(t, sb.String())
}

func TestHelp_set(t *testing.T) {
	t.Parallel()

	var h Help
	require.NoError(t, h.Set("true"))
	assert.Equal(t, DefaultHelp, h, "bare -h means the default topic")

	require.NoError(t, h.Set(" Serve "))
	assert.Equal(t, Help("serve"), h)
}

func TestHelp_usageIsFirstLine(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	require.NoError(t, UsageHelp.Write(&sb))

	usage := sb.String()
	assert.True(t, strings.HasPrefix(_defaultHelp, usage))
	assert.Equal(t, 1, strings.Count(usage, "\n"))
}
