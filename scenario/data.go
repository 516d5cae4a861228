package scenario

// Toy datasets used by the resampling commands and the docs. They are
// deliberately small; the point is the method, not the data.
var (
	// WrenchLengths are measured lengths, in cm, from a box of nominally
	// 20cm wrenches.
	WrenchLengths = []float64{
		20.1, 19.8, 20.3, 19.9, 20.0, 20.2, 19.7, 20.1, 19.9, 20.4,
		20.0, 19.6, 20.2, 20.1, 19.8, 20.0, 20.3, 19.9, 20.1, 20.0,
	}

	// DonationsA and DonationsB are per-hour donation totals, in dollars,
	// collected under two versions of a fundraising page.
	DonationsA = []float64{12, 5, 8, 30, 2, 15, 7, 25, 9, 4, 18, 6, 11, 3, 20}
	DonationsB = []float64{28, 14, 35, 9, 40, 22, 17, 50, 13, 26, 31, 8, 45, 19, 24}
)
