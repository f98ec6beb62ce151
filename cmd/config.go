package cmd

// Config carries all settings the application reads from the environment.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	RedisURI   string

	// OfferTimeoutSeconds is the response window each candidate gets.
	OfferTimeoutSeconds int
	// FulfillmentRadiusMeters bounds the candidate search for fulfillment tasks.
	FulfillmentRadiusMeters float64
	// CarriageRadiusMeters bounds the candidate search for carriage tasks.
	CarriageRadiusMeters float64
	// SweepCronSchedule is the five-field cron expression of the
	// unassigned-task sweep.
	SweepCronSchedule string
}
