// Package rtl drives RTL2832U-based USB SDR dongles: device enumeration
// against a catalog of known vendor/product IDs, the vendor register
// protocol of the demodulator, I2C access to the RF tuner behind its
// repeater gate, baseband and sample-rate configuration, and synchronous
// or continuous asynchronous delivery of raw 8-bit IQ samples.
//
// A Device is not safe for concurrent use: the caller must serialize all
// tuner-affecting and configuration calls. ReadAsync blocks its caller
// until CancelAsync is observed, which takes up to one polling interval.
package rtl
