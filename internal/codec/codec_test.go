package codec

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/catalogue/internal/model"
)

func sampleItems() []model.Item {
	acquired := model.NewDate(2023, time.May, 1)
	due := model.NewDate(2024, time.January, 15)

	video := model.NewVideo("Alien", model.VideoDetails{Publisher: "20th Century Fox", Duration: 117})
	book := model.NewBook("Dune", model.BookDetails{Author: "Frank Herbert", ISBN: "9780441013593"})
	book.Acquired = &acquired
	audio := model.NewAudio("Kind of Blue", model.AudioDetails{Artist: "Miles Davis", Duration: 46})
	audio.Loan("alice", &due)
	misc := model.NewMiscellaneous("Globe")
	misc.Location = "Shelf 3"
	magazine := model.NewMagazine("Wired", model.MagazineDetails{Publisher: "Condé Nast", Edition: "June 2023"})
	book2 := model.NewBook("Emma", model.BookDetails{Author: "Jane Austen"})

	return []model.Item{video, book, audio, misc, magazine, book2}
}

func TestRoundTrip(t *testing.T) {
	c := New(Options{})
	items := sampleItems()

	data, err := c.Encode(model.NewCatalogue(items...))
	require.NoError(t, err)

	decoded, err := c.Decode(data)
	require.NoError(t, err)

	// Regrouped in document order; relative order within a kind is kept.
	want := []model.Item{items[2], items[1], items[5], items[3], items[4], items[0]}
	assert.Equal(t, want, decoded)
}

func TestEncodeKeyOrderAndGrouping(t *testing.T) {
	data, err := New(Options{}).Encode(model.NewCatalogue(sampleItems()...))
	require.NoError(t, err)

	text := string(data)
	last := -1
	for _, kind := range model.Kinds {
		pos := strings.Index(text, `"`+kind.Key()+`": [`)
		require.GreaterOrEqual(t, pos, 0, kind.Key())
		assert.Greater(t, pos, last, "key %s out of order", kind.Key())
		last = pos
	}

	var doc map[string][]map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Len(t, doc, 5)
	require.Len(t, doc["book"], 2)
	assert.Equal(t, "Dune", doc["book"][0]["title"])
	assert.Equal(t, "Emma", doc["book"][1]["title"])
}

func TestNullOmission(t *testing.T) {
	misc := model.NewMiscellaneous("Globe")
	misc.Status = ""

	data, err := New(Options{}).Encode(model.NewCatalogue(misc))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "null")

	var doc map[string][]map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	entry := doc["item"][0]
	assert.Equal(t, map[string]any{"id": misc.ID, "title": "Globe"}, entry)
}

func TestDateFormat(t *testing.T) {
	acquired := model.NewDate(2023, time.May, 1)
	it := model.NewMiscellaneous("Globe")
	it.Acquired = &acquired

	c := New(Options{})
	data, err := c.Encode(model.NewCatalogue(it))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"acquired": "2023-05-01"`)

	doc := `{"audio":[],"book":[],"item":[{"id":"x","title":"Globe","acquired":"2023-05-01"}],"magazine":[],"video":[]}`
	items, err := c.Decode([]byte(doc))
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Acquired)
	assert.Equal(t, model.Date{Year: 2023, Month: time.May, Day: 1}, *items[0].Acquired)

	bad := `{"item":[{"id":"x","title":"Globe","acquired":1682899200000}]}`
	_, err = c.Decode([]byte(bad))
	var derr *DeserializationError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "item", derr.Field)
	assert.Equal(t, 0, derr.Index)
}

func TestEmptyCatalogue(t *testing.T) {
	c := New(Options{})
	data, err := c.Encode(model.NewCatalogue())
	require.NoError(t, err)
	assert.JSONEq(t, `{"audio":[],"book":[],"item":[],"magazine":[],"video":[]}`, string(data))

	items, err := c.Decode(data)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestMissingFieldsReadAsEmpty(t *testing.T) {
	doc := `{"book":[{"id":"b1","title":"Dune","author":"Frank Herbert"}]}`

	report, err := New(Options{}).DecodeReport([]byte(doc))
	require.NoError(t, err)
	require.Len(t, report.Items, 1)
	assert.Equal(t, model.KindBook, report.Items[0].Kind)
	assert.Equal(t, "Frank Herbert", report.Items[0].Book.Author)

	var missing []string
	for _, m := range report.Missing {
		assert.ErrorIs(t, m, ErrMissingField)
		missing = append(missing, m.Field)
	}
	assert.Equal(t, []string{"audio", "item", "magazine", "video"}, missing)
}

func TestNullFieldReadAsMissing(t *testing.T) {
	report, err := New(Options{}).DecodeReport([]byte(`{"audio":null,"book":[],"item":[],"magazine":[],"video":[]}`))
	require.NoError(t, err)
	require.Len(t, report.Missing, 1)
	assert.Equal(t, "audio", report.Missing[0].Field)
}

func TestStrictMissingFieldFails(t *testing.T) {
	_, err := New(Options{Strict: true}).Decode([]byte(`{"book":[]}`))
	var derr *DeserializationError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "audio", derr.Field)
	assert.Equal(t, -1, derr.Index)
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestStrictRejectsUnknownItemFields(t *testing.T) {
	doc := `{"audio":[],"book":[],"item":[{"id":"x","title":"Globe","colour":"blue"}],"magazine":[],"video":[]}`

	_, err := New(Options{}).Decode([]byte(doc))
	assert.NoError(t, err)

	_, err = New(Options{Strict: true}).Decode([]byte(doc))
	assert.Error(t, err)
}

func TestUnknownTopLevelKeyIgnored(t *testing.T) {
	doc := `{"audio":[],"book":[],"item":[],"magazine":[],"video":[],"foo":[]}`
	items, err := New(Options{Strict: true}).Decode([]byte(doc))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDocumentShapeErrors(t *testing.T) {
	c := New(Options{})

	for _, doc := range []string{`[]`, `null`, ``, `"text"`} {
		_, err := c.Decode([]byte(doc))
		assert.ErrorIs(t, err, ErrNotObject, doc)
	}

	_, err := c.Decode([]byte(`{"audio": {}}`))
	var derr *DeserializationError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "audio", derr.Field)
	assert.ErrorIs(t, err, ErrNotArray)

	_, err = c.Decode([]byte(`{"audio": [`))
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "", derr.Field)
}

func TestPerItemErrorIdentifiesKindAndIndex(t *testing.T) {
	doc := `{"book":[
		{"id":"b1","title":"Dune","author":"Frank Herbert"},
		{"id":"b2","title":"Untitled"}
	]}`

	_, err := New(Options{}).Decode([]byte(doc))
	var derr *DeserializationError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "book", derr.Field)
	assert.Equal(t, 1, derr.Index)
	assert.ErrorIs(t, err, ErrSchema)
	assert.Contains(t, err.Error(), `"author"`)
}

func TestSkipInvalid(t *testing.T) {
	doc := `{"audio":[{"id":"a1","title":"Blue","duration":"long"}],
		"book":[{"id":"b1","title":"Dune","author":"Frank Herbert"}],
		"item":[{"title":"no id"}],"magazine":[],"video":[]}`

	report, err := New(Options{SkipInvalid: true}).DecodeReport([]byte(doc))
	require.NoError(t, err)
	require.Len(t, report.Items, 1)
	assert.Equal(t, "b1", report.Items[0].ID)
	require.Len(t, report.Skipped, 2)
	assert.Equal(t, "audio", report.Skipped[0].Field)
	assert.Equal(t, "item", report.Skipped[1].Field)
}

func TestEncodeMalformedItems(t *testing.T) {
	t.Run("details mismatch", func(t *testing.T) {
		it := model.NewAudio("Blue", model.AudioDetails{})
		it.Book = &model.BookDetails{Author: "x"}
		_, err := New(Options{}).Encode(model.NewCatalogue(model.NewMiscellaneous("ok"), it))

		var serr *SerializationError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, 1, serr.Index)
		assert.Equal(t, model.KindAudio, serr.Kind)
		assert.ErrorIs(t, err, ErrDetailsMismatch)
	})

	t.Run("unknown kind", func(t *testing.T) {
		it := model.NewMiscellaneous("odd")
		it.Kind = model.Kind(9)
		_, err := New(Options{}).Encode(model.NewCatalogue(it))
		assert.ErrorIs(t, err, model.ErrUnknownKind)
	})

	t.Run("missing required", func(t *testing.T) {
		it := model.NewBook("", model.BookDetails{})
		_, err := New(Options{}).Encode(model.NewCatalogue(it))
		assert.ErrorIs(t, err, ErrSchema)
		assert.Contains(t, err.Error(), `"title"`)
		assert.Contains(t, err.Error(), `"author"`)
	})

	t.Run("unreadable date", func(t *testing.T) {
		it := model.NewMiscellaneous("Globe")
		it.Acquired = &model.Date{}
		_, err := New(Options{}).Encode(model.NewCatalogue(model.NewMiscellaneous("ok"), it))

		var serr *SerializationError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, 1, serr.Index)
		assert.ErrorIs(t, err, model.ErrInvalidDate)
	})

	t.Run("several foreign details name the first kind", func(t *testing.T) {
		it := model.NewMiscellaneous("odd")
		it.Video = &model.VideoDetails{}
		it.Audio = &model.AudioDetails{}
		for range 10 {
			_, err := New(Options{}).Encode(model.NewCatalogue(it))
			require.ErrorIs(t, err, ErrDetailsMismatch)
			assert.Contains(t, err.Error(), "has "+model.KindAudio.String()+" details")
		}
	})

	t.Run("bad status", func(t *testing.T) {
		it := model.NewMiscellaneous("Globe")
		it.Status = "lost"
		_, err := New(Options{}).Encode(model.NewCatalogue(it))
		assert.True(t, errors.Is(err, ErrSchema))
	})
}

func TestDecodedItemsCarryDetails(t *testing.T) {
	c := New(Options{})
	bare := model.Item{Kind: model.KindVideo, Base: model.Base{ID: "v1", Title: "Alien"}}

	data, err := c.Encode(model.NewCatalogue(bare))
	require.NoError(t, err)
	items, err := c.Decode(data)
	require.NoError(t, err)

	require.Len(t, items, 1)
	require.NotNil(t, items[0].Video)
	assert.Equal(t, model.VideoDetails{}, *items[0].Video)
	bare.Video = &model.VideoDetails{}
	assert.Equal(t, bare, items[0])
}

func TestIndentOption(t *testing.T) {
	data, err := New(Options{Indent: "\t"}).Encode(model.NewCatalogue())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{\n\t\"audio\": []"))
}
