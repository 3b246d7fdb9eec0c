package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lightweight/internal/domain"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    domain.Date
		wantErr bool
	}{
		{"valid", "01/15/2024", domain.Date{Year: 2024, Month: time.January, Day: 15}, false},
		{"leap day", "02/29/2024", domain.Date{Year: 2024, Month: time.February, Day: 29}, false},
		{"not a leap year", "02/29/2023", domain.Date{}, true},
		{"single digit month", "1/15/2024", domain.Date{}, true},
		{"iso layout", "2024-01-15", domain.Date{}, true},
		{"month out of range", "13/01/2024", domain.Date{}, true},
		{"empty", "", domain.Date{}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := domain.ParseDate(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.in, got.String())
		})
	}
}

func TestDateOrderingAcrossYears(t *testing.T) {
	// As strings "12/31/2023" > "01/01/2024"; as dates it is the other way round.
	dec := domain.MustParseDate("12/31/2023")
	jan := domain.MustParseDate("01/01/2024")

	assert.True(t, dec.Before(jan))
	assert.False(t, jan.Before(dec))
	assert.Equal(t, 0, jan.Compare(domain.MustParseDate("01/01/2024")))
	assert.Equal(t, 1, jan.Compare(dec))
}

func TestDateJSON(t *testing.T) {
	in := struct {
		Date domain.Date `json:"date"`
	}{Date: domain.MustParseDate("03/07/2025")}

	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"03/07/2025"}`, string(b))

	var out struct {
		Date domain.Date `json:"date"`
	}
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in.Date, out.Date)

	require.Error(t, json.Unmarshal([]byte(`{"date":"2025-03-07"}`), &out))
}

func TestDateScan(t *testing.T) {
	var d domain.Date
	require.NoError(t, d.Scan("06/30/2024"))
	assert.Equal(t, domain.MustParseDate("06/30/2024"), d)

	require.NoError(t, d.Scan([]byte("07/01/2024")))
	assert.Equal(t, domain.MustParseDate("07/01/2024"), d)

	require.Error(t, d.Scan(int64(5)))

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "07/01/2024", v)
}

func TestParseStoredDate(t *testing.T) {
	tests := []struct {
		in    string
		want  domain.Date
		valid bool
	}{
		{"01/15/2024", domain.Date{Year: 2024, Month: time.January, Day: 15}, true},
		{"02/30/2024", domain.Date{Year: 2024, Month: time.February, Day: 30}, false},
		{"13/45/2024", domain.Date{Year: 2024, Month: 13, Day: 45}, false},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			d, err := domain.ParseStoredDate(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, d)
			assert.Equal(t, tc.in, d.String())
			assert.Equal(t, tc.valid, d.Valid())
		})
	}

	for _, bad := range []string{"", "2024-01-15", "1/5/2024", "garbage"} {
		_, err := domain.ParseStoredDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestLegacyDatesOrderByFields(t *testing.T) {
	feb30, err := domain.ParseStoredDate("02/30/2024")
	require.NoError(t, err)

	assert.True(t, domain.MustParseDate("02/29/2024").Before(feb30))
	assert.True(t, feb30.Before(domain.MustParseDate("03/01/2024")))
}

func TestDateScanLegacyRow(t *testing.T) {
	var d domain.Date
	require.NoError(t, d.Scan("02/30/2024"))
	assert.Equal(t, "02/30/2024", d.String())

	require.Error(t, d.Scan("not a date"))
}
