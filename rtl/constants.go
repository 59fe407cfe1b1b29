package rtl

import "time"

// Fixed clocking and rate limits of the RTL2832.
const (
	// CrystalFreq is the reference crystal frequency in Hz.
	CrystalFreq = 28800000

	// MaxSampleRate is the highest rate the resampler supports in Hz.
	MaxSampleRate = 3200000
)

// Register blocks addressed through the high byte of the control
// transfer index field.
const (
	blockDemod = 0
	blockUSB   = 1
	blockSys   = 2
	blockTuner = 3
	blockROM   = 4
	blockIR    = 5
	blockI2C   = 6
)

// USB core registers.
const (
	regUSBSysctl     = 0x2000
	regUSBCtrl       = 0x2010
	regUSBStat       = 0x2014
	regUSBEpaCfg     = 0x2144
	regUSBEpaCtl     = 0x2148
	regUSBEpaMaxpkt  = 0x2158
	regUSBEpaMaxpkt2 = 0x215a
	regUSBEpaFifoCfg = 0x2160
)

// System registers.
const (
	regDemodCtl  = 0x3000
	regGPO       = 0x3001
	regGPI       = 0x3002
	regGPOE      = 0x3003
	regGPD       = 0x3004
	regSysIntE   = 0x3005
	regSysIntS   = 0x3006
	regGPCfg0    = 0x3007
	regGPCfg1    = 0x3008
	regSysIntE1  = 0x3009
	regSysIntS1  = 0x300a
	regDemodCtl1 = 0x300b
	regIRSuspend = 0x300c
)

// Bulk IN endpoint delivering the sample stream.
const bulkInEndpoint = 0x81

// Streaming engine pool geometry. Fixed for the lifetime of a session;
// buffers are reused across transfers and never freed individually.
const (
	transferBufferCount  = 32
	transferBufferLength = 16 * 16384
)

// Transfer timing.
const (
	ctrlTimeout     = 1 * time.Second
	syncReadTimeout = 3 * time.Second
	pollInterval    = 1 * time.Second
)

// Default FIR coefficients used for DAB/FM by the Windows driver; the
// DVB driver uses different ones.
var firCoeff = [20]byte{
	0xca, 0xdc, 0xd7, 0xd8, 0xe0, 0xf2, 0x0e, 0x35, 0x06, 0x50,
	0x9c, 0x0d, 0x71, 0x11, 0x14, 0x71, 0x74, 0x19, 0x41, 0x00,
}

// SupportedDevice is one entry in the static catalog of known dongles.
type SupportedDevice struct {
	VendorID  uint16
	ProductID uint16
	Name      string
}

// supportedDevices is the catalog of dongles this driver recognizes.
// Lookup is by exact vendor/product match, first entry wins.
var supportedDevices = []SupportedDevice{
	{0x0bda, 0x2832, "Generic RTL2832U (e.g. hama nano)"},
	{0x0bda, 0x2838, "ezcap USB 2.0 DVB-T/DAB/FM dongle"},
	{0x0ccd, 0x00a9, "Terratec Cinergy T Stick Black (rev 1)"},
	{0x0ccd, 0x00b3, "Terratec NOXON DAB/DAB+ USB dongle (rev 1)"},
	{0x0ccd, 0x00e0, "Terratec NOXON DAB/DAB+ USB dongle (rev 2)"},
	{0x1f4d, 0xb803, "GTek T803"},
	{0x1f4d, 0xc803, "Lifeview LV5TDeluxe"},
	{0x1b80, 0xd3a4, "Twintech UT-40"},
	{0x1d19, 0x1101, "Dexatek DK DVB-T Dongle (Logilink VG0002A)"},
	{0x1d19, 0x1102, "Dexatek DK DVB-T Dongle (MSI DigiVox mini II V3.0)"},
	{0x0458, 0x707f, "Genius TVGo DVB-T03 USB dongle (Ver. B)"},
	{0x1b80, 0xd393, "GIGABYTE GT-U7300"},
	{0x1b80, 0xd395, "Peak 102569AGPK"},
	{0x1b80, 0xd39d, "SVEON STV20 DVB-T USB & FM"},
}
