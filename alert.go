package dtls

// AlertLevel : RFC5246 7.2.
type AlertLevel byte

const (
	AlertLevelWarning AlertLevel = 1
	AlertLevelFatal   AlertLevel = 2
)

// AlertDescription : the subset of RFC5246 7.2's alert descriptions this
// core can raise. Every fatal return path in the driver maps to exactly
// one of these before handing control back to the caller (spec §7).
type AlertDescription byte

const (
	AlertUnexpectedMessage    AlertDescription = 10
	AlertDecodeError          AlertDescription = 50
	AlertHandshakeFailure     AlertDescription = 40
	AlertIllegalParameter     AlertDescription = 47
	AlertUnsupportedExtension AlertDescription = 110
	AlertInternalError        AlertDescription = 80
)
