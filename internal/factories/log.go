package factories

import (
	"math/rand"
	"time"

	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"

	"github.com/rebornlabs/wastelog/internal/models"
	"github.com/rebornlabs/wastelog/internal/session"
)

var fake = faker.New()

// LogFactory produces plausible demo records for seeding a fresh database.
type LogFactory struct {
	Catalog models.Catalog
	Rng     *rand.Rand
}

func NewLogFactory(catalog models.Catalog, seed int64) *LogFactory {
	return &LogFactory{
		Catalog: catalog,
		Rng:     rand.New(rand.NewSource(seed)),
	}
}

var demoTitles = []string{
	"Breakfast leftovers",
	"Lunch cleanup",
	"Dinner scraps",
	"Meal prep waste",
	"Fridge clear-out",
	"Takeaway packaging",
}

// CreateLogRecord builds one record dated within the past daysBack days,
// going through the real session pipeline so demo data obeys the same
// invariants as user data.
func (f *LogFactory) CreateLogRecord(daysBack int) *models.LogRecord {
	if daysBack < 1 {
		daysBack = 1
	}
	store := session.NewSelectionStore(f.Catalog)

	mode := models.UnitPortion
	if f.Rng.Intn(2) == 0 {
		mode = models.UnitGrams
	}

	// one to three categories, one to three items each
	categories := f.Rng.Perm(len(models.Categories))[:1+f.Rng.Intn(len(models.Categories))]
	for _, ci := range categories {
		category := models.Categories[ci]
		items := f.Catalog.Items(category)
		for n := 1 + f.Rng.Intn(3); n > 0; n-- {
			item := items[f.Rng.Intn(len(items))]
			qty := float64(1 + f.Rng.Intn(4))
			if mode == models.UnitGrams {
				qty = float64(10 + f.Rng.Intn(490))
			}
			_ = store.SetQuantity(category, item.ID, qty)
		}
	}

	date := time.Now().AddDate(0, 0, -f.Rng.Intn(daysBack)).UnixMilli()
	scalars := session.ScalarFields{
		Date:     date,
		Title:    demoTitles[f.Rng.Intn(len(demoTitles))],
		Category: models.CategoryAvoidable,
		Mode:     mode,
	}
	if f.Rng.Intn(3) == 0 {
		scalars.Remarks = fake.Lorem().Sentence(6)
	}

	return session.ToLogRecord(store, mode, scalars, cuid.New(), "", "")
}
