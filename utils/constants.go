// File: utils/constants.go
package utils

import "time"

// PortalSessionPrefix is the prefix used for Redis portal session keys.
const PortalSessionPrefix = "portalSession:"

// PortalSessionTTL is the time-to-live for portal session entries.
const PortalSessionTTL = 24 * time.Hour

// WizardSessionPrefix is the prefix used for Redis wizard session keys.
const WizardSessionPrefix = "wizard:"

// WizardSessionTTL is the time-to-live for wizard session entries. Long enough
// to survive a payment gateway round-trip.
const WizardSessionTTL = 45 * time.Minute

// PendingPaymentPrefix keys the stashed consultation payload by transaction ID
// while the browser is away at the gateway.
const PendingPaymentPrefix = "pendingPayment:"

// CallbackOutcomePrefix keys recorded payment callback outcomes by transaction
// ID so a redelivered callback never triggers a second verification.
const CallbackOutcomePrefix = "callbackOutcome:"

// CallbackClaimPrefix keys the short-lived reconciliation claim taken before a
// transaction is verified, so concurrent deliveries of the same callback
// cannot both reach the verification backend.
const CallbackClaimPrefix = "callbackClaim:"

// CallbackClaimTTL bounds how long a crashed reconciliation can block a
// redelivery of the same transaction.
const CallbackClaimTTL = 2 * time.Minute

// CallbackOutcomeTTL keeps a callback outcome around long enough for any
// back-button or refresh redelivery.
const CallbackOutcomeTTL = 24 * time.Hour

// TimeSlots is the fixed set of bookable consultation times.
var TimeSlots = []string{
	"9:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
	"2:00 PM", "3:00 PM", "4:00 PM", "5:00 PM",
}

// PracticeAreas lists the case types a consultation may be booked under.
var PracticeAreas = []string{
	"Corporate & Commercial",
	"Banking & Finance",
	"Real Estate & Property",
	"Family Law",
	"Criminal Defense",
	"Intellectual Property",
	"Tax & Revenue",
	"Immigration Law",
	"Labor & Employment",
	"International Trade",
	"Other",
}

// UrgencyLevels lists the accepted urgency values.
var UrgencyLevels = []string{"low", "medium", "high", "critical"}

// ConsultationChannels lists how a consultation can be held.
var ConsultationChannels = []string{"office", "video", "phone"}

// PaymentMethods lists the gateway methods offered for paid consultations.
var PaymentMethods = []string{"bkash", "nagad", "rocket", "card"}
