// Package domain models electric-vehicle accident prediction inputs for
// New York State.
//
// # ZIP code conventions
//
// Predictions are gated to New York State ZIP codes, expressed as five fixed
// inclusive integer ranges:
//
//	10001–14925  New York City and surrounding areas
//	12007–12887  Capital Region
//	13001–13901  Central New York
//	14001–14788  Western New York
//	14801–14925  Southern Tier
//
// The outer NYC range subsumes the other four, and within it the Queens range
// (11001–11697) contains the Brooklyn range (11201–11256). Both overlaps come
// from the training pipeline's range tables and are load-bearing: validity is
// the union of the five ranges, and sub-region classification walks an ordered
// list where the first matching range wins. Do not deduplicate or reorder.
//
// # Model feature columns
//
// The trained classifier consumes a flat record whose column names mirror the
// NYC collision dataset the model was fitted on:
//
//	Month, Day, Hour, DayOfWeek         calendar features (DayOfWeek: Monday=0)
//	VEHICLE TYPE CODE 2                 one of seven vehicle type strings
//	ZIP CODE                            integer ZIP
//	CONTRIBUTING FACTOR VEHICLE 1       one of seven factor strings
//	IsRushHour, IsWeekend, IsNightTime  0/1 indicator features
//
// Rush hour is 07–09 and 16–19 inclusive, night time is 22–23 and 00–05,
// weekend is Saturday or Sunday.
package domain
