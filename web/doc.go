// Package web serves the estimator UI: an HTML form taking a voltage, the
// estimated state of charge, a voltage vs SOC chart with the reading
// overlaid, and the calibration table. A small JSON API exposes the same
// estimator.
package web
