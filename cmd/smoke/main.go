// smoke exercises a running hospital API through the gateway client: a pool
// of workers books appointments, flips their status, and runs the read
// endpoints for a fixed duration, then prints per-operation latency figures.
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog"

	"github.com/medicore/hospital-desk/internal/appointment"
	"github.com/medicore/hospital-desk/internal/callrequest"
	"github.com/medicore/hospital-desk/internal/config"
	"github.com/medicore/hospital-desk/internal/hospitalapi"
	"github.com/medicore/hospital-desk/internal/patient"
	"github.com/medicore/hospital-desk/internal/staff"
)

type SmokeConfig struct {
	LoginID     string
	Password    string
	Duration    time.Duration
	Workers     int
	BookRatio   float64
	DecideRatio float64
	ReadRatio   float64
}

// DataPool holds the IDs the workers pick operations against. Doctors are
// loaded once up front; appointment IDs accumulate as bookings succeed.
type DataPool struct {
	Doctors []string

	mu           sync.RWMutex
	appointments []string
}

func (dp *DataPool) AddAppointment(id string) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.appointments = append(dp.appointments, id)
}

func (dp *DataPool) RandomAppointment(rng *rand.Rand) (string, bool) {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	if len(dp.appointments) == 0 {
		return "", false
	}
	return dp.appointments[rng.Intn(len(dp.appointments))], true
}

type OperationMetrics struct {
	Total     int64
	Success   int64
	Rejected  int64
	Error     int64
	Latencies []time.Duration
	mu        sync.Mutex
}

// Record classifies one call. A ValidationError is a rejection the server
// meant to send (bad transition, duplicate login), not an operational error.
func (om *OperationMetrics) Record(latency time.Duration, err error) {
	atomic.AddInt64(&om.Total, 1)

	var verr *hospitalapi.ValidationError
	switch {
	case err == nil:
		atomic.AddInt64(&om.Success, 1)
	case errors.As(err, &verr):
		atomic.AddInt64(&om.Rejected, 1)
	default:
		atomic.AddInt64(&om.Error, 1)
	}

	om.mu.Lock()
	om.Latencies = append(om.Latencies, latency)
	om.mu.Unlock()
}

func (om *OperationMetrics) Stats() (avg, lo, hi, p50, p95 time.Duration) {
	om.mu.Lock()
	defer om.mu.Unlock()

	if len(om.Latencies) == 0 {
		return 0, 0, 0, 0, 0
	}

	latencies := make([]time.Duration, len(om.Latencies))
	copy(latencies, om.Latencies)
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}

	avg = sum / time.Duration(len(latencies))
	lo = latencies[0]
	hi = latencies[len(latencies)-1]
	p50 = latencies[min(len(latencies)*50/100, len(latencies)-1)]
	p95 = latencies[min(len(latencies)*95/100, len(latencies)-1)]
	return avg, lo, hi, p50, p95
}

type Metrics struct {
	Book       OperationMetrics
	Decide     OperationMetrics
	ListAppts  OperationMetrics
	SearchPats OperationMetrics
	ListCalls  OperationMetrics
}

type Smoke struct {
	config  SmokeConfig
	pool    *DataPool
	api     *hospitalapi.Client
	metrics Metrics
	log     zerolog.Logger
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	baseCfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load error")
	}

	cfg := loadSmokeConfig()
	log.Info().
		Dur("duration", cfg.Duration).
		Int("workers", cfg.Workers).
		Float64("book", cfg.BookRatio).
		Float64("decide", cfg.DecideRatio).
		Float64("read", cfg.ReadRatio).
		Msg("smoke starting")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	api := hospitalapi.New(baseCfg.APIBaseURL, baseCfg.HTTPTimeout, log)
	if _, err := api.Login(ctx, cfg.LoginID, cfg.Password, staff.RoleReceptionist); err != nil {
		log.Fatal().Err(err).Msg("login error")
	}

	doctors, err := api.ListUsersByRole(ctx, staff.RoleDoctor)
	if err != nil {
		log.Fatal().Err(err).Msg("load doctors error")
	}
	if len(doctors) == 0 {
		log.Fatal().Msg("no doctors registered, nothing to book against")
	}

	pool := &DataPool{}
	for _, doc := range doctors {
		pool.Doctors = append(pool.Doctors, doc.ID)
	}
	log.Info().Int("doctors", len(pool.Doctors)).Msg("data pool loaded")

	smoke := &Smoke{config: cfg, pool: pool, api: api, log: log}
	smoke.Run()
	smoke.PrintReport()
}

func loadSmokeConfig() SmokeConfig {
	cfg := SmokeConfig{
		LoginID:     getEnv("SMOKE_LOGIN_ID", "reception1"),
		Password:    getEnv("SMOKE_PASSWORD", "letmein123"),
		Duration:    getDuration("SMOKE_DURATION", 30*time.Second),
		Workers:     getInt("SMOKE_WORKERS", 5),
		BookRatio:   getFloat("SMOKE_BOOK_RATIO", 0.3),
		DecideRatio: getFloat("SMOKE_DECIDE_RATIO", 0.2),
		ReadRatio:   getFloat("SMOKE_READ_RATIO", 0.5),
	}

	total := cfg.BookRatio + cfg.DecideRatio + cfg.ReadRatio
	if total > 0 {
		cfg.BookRatio /= total
		cfg.DecideRatio /= total
		cfg.ReadRatio /= total
	}
	return cfg
}

func (s *Smoke) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Duration)
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < s.config.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			s.worker(ctx, workerID)
		}(i)
	}

	wg.Wait()
	s.log.Info().Msg("smoke complete")
}

func (s *Smoke) worker(ctx context.Context, workerID int) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(workerID)))
	faker := gofakeit.New(uint64(workerID) + 1)

	for {
		select {
		case <-ctx.Done():
			return
		default:
			r := rng.Float64()
			switch {
			case r < s.config.BookRatio:
				s.doBook(ctx, rng, faker)
			case r < s.config.BookRatio+s.config.DecideRatio:
				s.doDecide(ctx, rng)
			default:
				switch rng.Intn(3) {
				case 0:
					s.doListAppointments(ctx)
				case 1:
					s.doSearchPatients(ctx, faker)
				case 2:
					s.doListCalls(ctx)
				}
			}
		}
	}
}

func (s *Smoke) doBook(ctx context.Context, rng *rand.Rand, faker *gofakeit.Faker) {
	doctorID := s.pool.Doctors[rng.Intn(len(s.pool.Doctors))]

	start := time.Now()

	p, err := s.api.CreateOrFindPatient(ctx, patient.Patient{
		Name:   faker.Name(),
		Phone:  faker.Phone(),
		Email:  faker.Email(),
		Age:    strconv.Itoa(faker.Number(1, 90)),
		Gender: "other",
	})
	if err != nil {
		s.metrics.Book.Record(time.Since(start), err)
		return
	}

	created, err := s.api.CreateAppointment(ctx, appointment.CreateRequest{
		PatientID:     p.ID,
		DoctorID:      doctorID,
		Reason:        faker.Sentence(5),
		DateTime:      time.Now().Add(time.Duration(rng.Intn(14*24)+1) * time.Hour).UTC(),
		Status:        appointment.StatusPending,
		PaymentStatus: appointment.PaymentPending,
	})
	s.metrics.Book.Record(time.Since(start), err)

	if err == nil {
		s.pool.AddAppointment(created.ID)
	}
}

func (s *Smoke) doDecide(ctx context.Context, rng *rand.Rand) {
	id, ok := s.pool.RandomAppointment(rng)
	if !ok {
		return
	}

	to := appointment.StatusConfirmed
	if rng.Intn(2) == 0 {
		to = appointment.StatusCancelled
	}

	start := time.Now()
	_, err := s.api.UpdateAppointment(ctx, id, appointment.Update{Status: &to})
	s.metrics.Decide.Record(time.Since(start), err)
}

func (s *Smoke) doListAppointments(ctx context.Context) {
	start := time.Now()
	_, err := s.api.ListAppointments(ctx)
	s.metrics.ListAppts.Record(time.Since(start), err)
}

func (s *Smoke) doSearchPatients(ctx context.Context, faker *gofakeit.Faker) {
	start := time.Now()
	_, err := s.api.SearchPatients(ctx, patient.SearchCriteria{Phone: faker.Phone()})
	s.metrics.SearchPats.Record(time.Since(start), err)
}

func (s *Smoke) doListCalls(ctx context.Context) {
	start := time.Now()
	_, err := s.api.ListCallRequests(ctx, callrequest.StatusPending)
	s.metrics.ListCalls.Record(time.Since(start), err)
}

func (s *Smoke) PrintReport() {
	fmt.Println()
	fmt.Println("SMOKE REPORT")
	fmt.Printf("Duration: %s\n", s.config.Duration)
	fmt.Printf("Workers: %d\n\n", s.config.Workers)

	printOperationReport("Book", &s.metrics.Book)
	printOperationReport("Decide", &s.metrics.Decide)
	printOperationReport("List appointments", &s.metrics.ListAppts)
	printOperationReport("Search patients", &s.metrics.SearchPats)
	printOperationReport("List call requests", &s.metrics.ListCalls)
}

func printOperationReport(name string, om *OperationMetrics) {
	total := atomic.LoadInt64(&om.Total)
	if total == 0 {
		return
	}

	success := atomic.LoadInt64(&om.Success)
	rejected := atomic.LoadInt64(&om.Rejected)
	failed := atomic.LoadInt64(&om.Error)

	avg, lo, hi, p50, p95 := om.Stats()

	fmt.Printf("%s:\n", name)
	fmt.Printf("  Total: %d\n", total)
	fmt.Printf("  Success: %d (%.1f%%)\n", success, float64(success)/float64(total)*100)
	if rejected > 0 {
		fmt.Printf("  Rejected: %d (%.1f%%)\n", rejected, float64(rejected)/float64(total)*100)
	}
	if failed > 0 {
		fmt.Printf("  Errors: %d (%.1f%%)\n", failed, float64(failed)/float64(total)*100)
	}
	fmt.Printf("  Latency: avg=%s min=%s max=%s p50=%s p95=%s\n",
		avg.Round(time.Millisecond), lo.Round(time.Millisecond), hi.Round(time.Millisecond),
		p50.Round(time.Millisecond), p95.Round(time.Millisecond))
	fmt.Println()
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
