package cli

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/idilsaglam/catalogue/internal/model"
)

func TestTruncateKeepsRunesWhole(t *testing.T) {
	assert.Equal(t, "Dune", truncate("Dune", 60))

	long := strings.Repeat("é", 70)
	got := truncate(long, 60)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 60, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestItemRowTruncatesMultibyteTitle(t *testing.T) {
	it := model.NewMagazine(strings.Repeat("a", 52)+"Condé Nast Traveller", model.MagazineDetails{})
	row := itemRow(indexedItem{index: 0, item: it}, model.Today())
	assert.True(t, utf8.ValidString(row[2]))
	assert.Equal(t, strings.Repeat("a", 52)+"Condé...", row[2])
}
