// Package kernel contains the shared value objects of the domain model:
// UUID identity, GeoPoint coordinates with great-circle distance, and Money
// fixed-point currency. Value objects are immutable and validated at
// construction; zero values fail validation.
package kernel
