package metadata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JepStar990/plainapi/internal/core/domain"
)

func rawDoc(url, content string) domain.RawDocument {
	return domain.RawDocument{
		URL:         url,
		Content:     content,
		ContentType: domain.ContentHTML,
		Timestamp:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestExtractor_Extract_BaseFields(t *testing.T) {
	e := New()
	doc := rawDoc("https://api.nasa.gov/docs", "Overview of the APIs.")

	md := e.Extract(doc, domain.DocTypeOverview)

	assert.Equal(t, "html", md["source_type"])
	assert.Equal(t, "overview", md["document_type"])
	assert.Equal(t, "2025-06-01T12:00:00Z", md["scraped_at"])
	assert.Equal(t, "https://api.nasa.gov/docs", md["url"])
	assert.NotContains(t, md, "api_endpoint")
	assert.NotContains(t, md, "extracted_parameters")
}

func TestExtractor_Extract_Endpoint(t *testing.T) {
	e := New()

	t.Run("fragment marker yields endpoint", func(t *testing.T) {
		md := e.Extract(rawDoc("https://api.nasa.gov/#apod", "anything"), domain.DocTypeAPIEndpoint)
		assert.Equal(t, "apod", md["api_endpoint"])
	})

	t.Run("bare marker segment", func(t *testing.T) {
		endpoint, ok := e.Endpoint("https://api.nasa.gov/#/mars-rover-photos")
		require.True(t, ok)
		assert.Equal(t, "mars-rover-photos", endpoint)
	})

	t.Run("no marker", func(t *testing.T) {
		_, ok := e.Endpoint("https://api.nasa.gov/docs")
		assert.False(t, ok)
	})

	t.Run("other host", func(t *testing.T) {
		_, ok := e.Endpoint("https://images-api.nasa.gov/#search")
		assert.True(t, ok) // subdomain still matches the docs host
		_, ok = e.Endpoint("https://example.com/#apod")
		assert.False(t, ok)
	})

	t.Run("malformed url omits endpoint", func(t *testing.T) {
		md := e.Extract(rawDoc("://not-a-url/#x", "anything"), domain.DocTypeAPIEndpoint)
		assert.NotContains(t, md, "api_endpoint")
	})

	t.Run("custom docs host", func(t *testing.T) {
		e := New(WithDocsHost("docs.example.org"))
		endpoint, ok := e.Endpoint("https://docs.example.org/#weather")
		require.True(t, ok)
		assert.Equal(t, "weather", endpoint)
	})
}

func TestExtractor_Extract_Parameters(t *testing.T) {
	e := New()
	content := `The apod endpoint accepts parameter: date in YYYY-MM-DD form.
Use { hd } (string) to request high definition imagery.
The query string parameter = 'api_key' is always required.`

	md := e.Extract(rawDoc("https://api.nasa.gov/#apod", content), domain.DocTypeParameter)

	params, ok := md["extracted_parameters"].([]string)
	require.True(t, ok)
	assert.Equal(t, []string{"api_key", "date", "hd"}, params)
}

func TestExtractor_Extract_ParametersOnlyForParameterDocs(t *testing.T) {
	e := New()
	content := "parameter: date controls the day"

	md := e.Extract(rawDoc("https://api.nasa.gov/docs", content), domain.DocTypeOverview)

	assert.NotContains(t, md, "extracted_parameters")
}

func TestExtractParameters(t *testing.T) {
	t.Run("labelled form", func(t *testing.T) {
		assert.Equal(t, []string{"date"}, ExtractParameters("Parameter: date selects the day."))
	})

	t.Run("typed token form", func(t *testing.T) {
		assert.Equal(t, []string{"rover"}, ExtractParameters("Pass { rover } (string) to filter."))
	})

	t.Run("query assignment form", func(t *testing.T) {
		assert.Equal(t, []string{"feed"}, ExtractParameters("query parameter = 'feed' selects the feed"))
	})

	t.Run("case insensitive", func(t *testing.T) {
		assert.Equal(t, []string{"count"}, ExtractParameters("PARAMETER: count"))
	})

	t.Run("union deduplicates", func(t *testing.T) {
		content := "parameter: date and also parameter 'date' and { date } (string)"
		assert.Equal(t, []string{"date"}, ExtractParameters(content))
	})

	t.Run("no matches", func(t *testing.T) {
		assert.Empty(t, ExtractParameters("nothing of interest here"))
	})
}
