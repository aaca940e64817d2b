package service

import (
	"time"
)

/* =======================================================
   Resolver rentang waktu laporan (pure, testable)
   ======================================================= */

// TimeWindow adalah interval tanggal inklusif [From, To]. Sisi nil = tidak
// dibatasi; dua-duanya nil = laporan tanpa filter tanggal.
type TimeWindow struct {
	From *time.Time
	To   *time.Time
}

func (w TimeWindow) Bounded() bool { return w.From != nil || w.To != nil }

const dateLayout = "2006-01-02"

// Token range simbolik yang dikenal.
const (
	RangeThisWeek    = "this-week"
	RangeThisMonth   = "this-month"
	RangeThisQuarter = "this-quarter"
	RangeThisYear    = "this-year"
)

// ResolveTimeWindow mengubah from/to eksplisit ("YYYY-MM-DD") atau satu token
// range menjadi interval konkret. Aturan:
//   - from/to eksplisit menang atas token kalau dua-duanya dikirim;
//   - this-week = Minggu s/d Sabtu minggu berjalan;
//   - this-month = tanggal 1 s/d akhir bulan;
//   - this-quarter = blok 3 bulan yang memuat now;
//   - this-year = 1 Jan s/d 31 Des;
//   - token tak dikenal ATAU tidak ada input = unbounded (tanpa filter).
//
// now di-pass eksplisit supaya deterministik di test.
func ResolveTimeWindow(fromStr, toStr, rangeToken string, now time.Time) TimeWindow {
	w := TimeWindow{}

	if fromStr != "" || toStr != "" {
		if t, err := time.Parse(dateLayout, fromStr); err == nil {
			tt := t
			w.From = &tt
		}
		if t, err := time.Parse(dateLayout, toStr); err == nil {
			tt := t
			w.To = &tt
		}
		if w.Bounded() {
			return w
		}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch rangeToken {
	case RangeThisWeek:
		// Minggu = hari pertama (Weekday() Sunday == 0)
		start := today.AddDate(0, 0, -int(today.Weekday()))
		end := start.AddDate(0, 0, 6)
		w.From, w.To = &start, &end
	case RangeThisMonth:
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, -1)
		w.From, w.To = &start, &end
	case RangeThisQuarter:
		qStartMonth := time.Month((int(today.Month())-1)/3*3 + 1)
		start := time.Date(today.Year(), qStartMonth, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 3, -1)
		w.From, w.To = &start, &end
	case RangeThisYear:
		start := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(today.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
		w.From, w.To = &start, &end
	}

	// token kosong / tak dikenal: biarkan unbounded
	return w
}
