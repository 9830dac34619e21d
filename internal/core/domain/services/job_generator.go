package services

import (
	"fmt"
	"math/rand/v2"
	"time"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
)

// Bounds for the randomized job attributes. Payment is drawn in thousands of
// monetary units, distance in kilometers with one decimal, estimate in
// minutes.
const (
	paymentMinThousands = 30
	paymentMaxThousands = 109
	distanceMin         = 2.0
	distanceSpread      = 5.0
	estimateMin         = 15
	estimateSpread      = 20
)

// JobGenerator is a domain service that produces randomized delivery jobs.
//
// Each generated job draws its pickup and delivery points independently from
// a fixed location catalog (they may coincide), a payment in
// [30000, 109000] monetary units, a distance in [2.0, 7.0) kilometers and a
// time estimate in [15, 34] minutes. The job id is derived from a
// monotonically increasing sequence owned by the job store, so ids are never
// reused even across restarts.
//
// Example usage:
//
//	generator := services.NewJobGenerator()
//	seq, _ := repo.NextSequence(ctx)
//	job, err := generator.Generate(seq, time.Now())
type JobGenerator struct {
	catalog []kernel.Location
}

// NewJobGenerator creates a generator backed by the built-in location
// catalog.
func NewJobGenerator() (JobGenerator, error) {
	catalog, err := locationCatalog()
	if err != nil {
		return JobGenerator{}, err
	}
	return JobGenerator{catalog: catalog}, nil
}

// Generate creates a new Job in New status from the given sequence number.
// The returned job is not yet persisted; callers must store it before
// offering it to couriers.
func (g JobGenerator) Generate(sequence int64, now time.Time) (*job.Job, error) {
	pickup := g.catalog[rand.IntN(len(g.catalog))]   //nolint:gosec // non-cryptographic draw
	delivery := g.catalog[rand.IntN(len(g.catalog))] //nolint:gosec // non-cryptographic draw

	payment := (rand.IntN(paymentMaxThousands-paymentMinThousands+1) + paymentMinThousands) * 1000 //nolint:gosec // non-cryptographic draw
	distance := fmt.Sprintf("%.1f", rand.Float64()*distanceSpread+distanceMin)                     //nolint:gosec // non-cryptographic draw
	estimate := rand.IntN(estimateSpread) + estimateMin                                            //nolint:gosec // non-cryptographic draw

	return job.NewJob(
		fmt.Sprintf("S%d", sequence),
		pickup,
		delivery,
		payment,
		distance,
		estimate,
		now,
	)
}

// locationCatalog returns the fixed set of pickup/delivery points jobs are
// drawn from.
func locationCatalog() ([]kernel.Location, error) {
	entries := []struct {
		name    string
		address string
	}{
		{"Toko Baju A", "Jl. Riau No. 50, Bandung, Jawa Barat, 40115"},
		{"Warung Nasi Cepat Saji", "Jl. Pemuda No. 101, Jakarta Timur, 13220"},
		{"Gudang Logistik X", "Jl. Raya Bekasi KM 20, Jakarta Timur, 13910"},
		{"Kantor Pusat", "Jl. HR Rasuna Said Kav. X-2 No. 5, Jakarta Selatan, 12950"},
	}

	catalog := make([]kernel.Location, 0, len(entries))
	for _, e := range entries {
		loc, err := kernel.NewLocation(e.name, e.address)
		if err != nil {
			return nil, err
		}
		catalog = append(catalog, loc)
	}

	return catalog, nil
}
