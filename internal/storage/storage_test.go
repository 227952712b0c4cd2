package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rgehrsitz/kanpu/internal/domain"
	"github.com/rgehrsitz/kanpu/internal/taxtable"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputStore_SaveLoadClear(t *testing.T) {
	dir := t.TempDir()
	store := NewInputStore(dir, nil)

	assert.False(t, store.HasData())
	assert.Nil(t, store.Load())

	general := decimal.NewFromInt(60000)
	input := &domain.DeductionInput{
		Salary:        decimal.NewFromInt(6000000),
		Ideco:         &domain.IdecoInput{AnnualPayment: decimal.NewFromInt(144000)},
		LifeInsurance: &domain.LifeInsuranceInput{IsNewSystem: true, GeneralLifeInsurance: &general},
		HousingLoan: &domain.HousingLoanInput{
			YearEndBalance: decimal.NewFromInt(25000000),
			ResidenceYear:  2023,
			HousingType:    domain.HousingNewZEH,
		},
	}
	store.Save(input)
	assert.True(t, store.HasData())

	loaded := store.Load()
	require.NotNil(t, loaded)
	assert.True(t, loaded.Salary.Equal(input.Salary))
	require.NotNil(t, loaded.Ideco)
	assert.True(t, loaded.Ideco.AnnualPayment.Equal(decimal.NewFromInt(144000)))
	require.NotNil(t, loaded.LifeInsurance.GeneralLifeInsurance)
	assert.True(t, loaded.LifeInsurance.GeneralLifeInsurance.Equal(general))
	assert.Nil(t, loaded.Donation)
	assert.Equal(t, domain.HousingNewZEH, loaded.HousingLoan.HousingType)

	store.Clear()
	assert.False(t, store.HasData())
	assert.Nil(t, store.Load())
}

func TestInputStore_IgnoresCorruptData(t *testing.T) {
	dir := t.TempDir()
	store := NewInputStore(dir, nil)

	require.NoError(t, os.WriteFile(filepath.Join(dir, inputFile), []byte("ideco:\n  annual_payment: 1000\n"), 0o644))
	assert.True(t, store.HasData())
	assert.Nil(t, store.Load(), "input without salary is ignored")

	require.NoError(t, os.WriteFile(filepath.Join(dir, inputFile), []byte("salary: [broken"), 0o644))
	assert.Nil(t, store.Load())

	for name, content := range map[string]string{
		"empty file":       "",
		"scalar document":  "just text\n",
		"sequence":         "- salary\n- 5000000\n",
		"salary not money": "salary: lots\n",
		"nested salary":    "ideco:\n  salary: 5000000\n",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, inputFile), []byte(content), 0o644))
		assert.Nil(t, store.Load(), name)
	}
}

func TestThemeStore(t *testing.T) {
	dir := t.TempDir()
	store := NewThemeStore(dir, nil)

	assert.Equal(t, ThemeSystem, store.Load())

	require.NoError(t, store.Save(ThemeDark))
	assert.Equal(t, ThemeDark, store.Load())

	require.NoError(t, store.Save(ThemeLight))
	assert.Equal(t, ThemeLight, NewThemeStore(dir, nil).Load())

	assert.Error(t, store.Save(Theme("sepia")))
	assert.Equal(t, ThemeLight, store.Load())
}

func tablesAt(version string, updated time.Time) *domain.TaxTables {
	tables := taxtable.Default()
	tables.Version = version
	tables.LastUpdated = updated
	return tables
}

func TestTableRepository_SaveGetLatest(t *testing.T) {
	repo := NewTableRepository(t.TempDir(), nil)

	got, err := repo.Get("")
	require.NoError(t, err)
	assert.Nil(t, got)

	older := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(tablesAt("2025", newer)))
	require.NoError(t, repo.Save(tablesAt("2024", older)))

	latest, err := repo.Get("")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "2025", latest.Version)

	v2024, err := repo.Get("2024")
	require.NoError(t, err)
	require.NotNil(t, v2024)
	assert.True(t, v2024.LastUpdated.Equal(older))

	missing, err := repo.Get("1999")
	require.NoError(t, err)
	assert.Nil(t, missing)

	all, err := repo.List()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestTableRepository_IsStale(t *testing.T) {
	repo := NewTableRepository(t.TempDir(), nil)
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, repo.IsStale("", now), "missing data is stale")

	require.NoError(t, repo.Save(tablesAt("2025", now.AddDate(0, -6, 0))))
	assert.False(t, repo.IsStale("2025", now))
	assert.False(t, repo.IsStale("", now))

	require.NoError(t, repo.Save(tablesAt("2024", now.AddDate(-1, 0, -1))))
	assert.True(t, repo.IsStale("2024", now))
	assert.True(t, repo.IsStale("2023", now))
}

func TestTableRepository_DeleteClear(t *testing.T) {
	repo := NewTableRepository(t.TempDir(), nil)
	now := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(tablesAt("2024", now)))
	require.NoError(t, repo.Save(tablesAt("2025", now)))

	require.NoError(t, repo.Delete("2024"))
	got, err := repo.Get("2024")
	require.NoError(t, err)
	assert.Nil(t, got)
	require.NoError(t, repo.Delete("2024"), "deleting a missing version is not an error")

	require.NoError(t, repo.Clear())
	all, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestTableRepository_RejectsBadInput(t *testing.T) {
	repo := NewTableRepository(t.TempDir(), nil)

	invalid := taxtable.Default()
	invalid.IncomeTaxRates = nil
	assert.Error(t, repo.Save(invalid))

	traversal := taxtable.Default()
	traversal.Version = "../escape"
	assert.Error(t, repo.Save(traversal))
}

func TestTableProvider_SeedsAndReuses(t *testing.T) {
	repo := NewTableRepository(t.TempDir(), nil)
	provider := NewTableProvider(repo, nil)
	now := time.Date(2026, time.February, 1, 12, 0, 0, 0, time.UTC)

	first, err := provider.Current(now)
	require.NoError(t, err)
	assert.Equal(t, taxtable.DefaultVersion, first.Version)
	assert.True(t, first.LastUpdated.Equal(now))
	assert.False(t, repo.IsStale("", now))

	custom := tablesAt("2026-custom", now.Add(time.Hour))
	custom.BasicDeduction = decimal.NewFromInt(580000)
	require.NoError(t, repo.Save(custom))

	second, err := provider.Current(now.Add(2 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "2026-custom", second.Version)
	assert.True(t, second.BasicDeduction.Equal(decimal.NewFromInt(580000)))
}

func TestTableProvider_RefreshesStaleData(t *testing.T) {
	repo := NewTableRepository(t.TempDir(), nil)
	old := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(tablesAt(taxtable.DefaultVersion, old)))

	now := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	tables, err := NewTableProvider(repo, nil).Current(now)
	require.NoError(t, err)
	assert.True(t, tables.LastUpdated.Equal(now))

	stored, err := repo.Get(taxtable.DefaultVersion)
	require.NoError(t, err)
	assert.True(t, stored.LastUpdated.Equal(now))
}
