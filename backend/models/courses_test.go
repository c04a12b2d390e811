package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVideoLinkList(t *testing.T) {
	topic := Topic{VideoLinks: `["https://example.com/a","https://example.com/b"]`}
	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, topic.VideoLinkList())
}

func TestVideoLinkListMalformed(t *testing.T) {
	topic := Topic{VideoLinks: "{definitely not json"}
	assert.Equal(t, []string{}, topic.VideoLinkList())
}

func TestVideoLinkListEmpty(t *testing.T) {
	assert.Equal(t, []string{}, (&Topic{}).VideoLinkList())
	assert.Equal(t, []string{}, (&Topic{VideoLinks: "null"}).VideoLinkList())
}
