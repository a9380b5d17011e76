package consumer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testTimestamp int64 = 1748772000

func TestJSONEventParser_Parse_Success(t *testing.T) {
	parser := NewJSONEventParser()

	body := []byte(`{
		"event_id": "evt-1",
		"event_name": "page_view",
		"event_category": "engagement",
		"source": "google",
		"medium": "cpc",
		"gclid": "gclid-1",
		"session_id": "sess-1",
		"page_path": "/services/kitchen",
		"conversion_value": 250.5,
		"timestamp": 1748772000
	}`)

	event, err := parser.Parse(body)

	assert.NoError(t, err)
	assert.Equal(t, "evt-1", event.ID)
	assert.Equal(t, "page_view", event.EventName)
	assert.Equal(t, "google", event.Source)
	assert.Equal(t, "cpc", event.Medium)
	assert.Equal(t, 250.5, event.ConversionValue)
	assert.Equal(t, time.Unix(testTimestamp, 0).UTC(), event.Timestamp)
}

func TestJSONEventParser_Parse_MissingEventName(t *testing.T) {
	parser := NewJSONEventParser()

	_, err := parser.Parse([]byte(`{"session_id": "sess-1"}`))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "event_name")
}

func TestJSONEventParser_Parse_InvalidJSON(t *testing.T) {
	parser := NewJSONEventParser()

	_, err := parser.Parse([]byte(`not json`))

	assert.Error(t, err)
}

func TestJSONEventParser_Parse_GeneratesIDWhenMissing(t *testing.T) {
	parser := NewJSONEventParser()

	event, err := parser.Parse([]byte(`{"event_name": "page_view"}`))

	assert.NoError(t, err)
	assert.NotEmpty(t, event.ID)
}

func TestJSONEventParser_Parse_MissingTimestampDefaultsToNow(t *testing.T) {
	parser := NewJSONEventParser()

	before := time.Now().UTC()
	event, err := parser.Parse([]byte(`{"event_name": "page_view"}`))
	after := time.Now().UTC()

	assert.NoError(t, err)
	assert.False(t, event.Timestamp.Before(before.Truncate(time.Second)))
	assert.False(t, event.Timestamp.After(after.Add(time.Second)))
}

func TestJSONEventParser_Parse_WrongFieldTypesTolerated(t *testing.T) {
	parser := NewJSONEventParser()

	event, err := parser.Parse([]byte(`{"event_name": "page_view", "source": 42, "conversion_value": "lots"}`))

	assert.NoError(t, err)
	assert.Empty(t, event.Source)
	assert.Zero(t, event.ConversionValue)
}
