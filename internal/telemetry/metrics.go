package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AddressMetrics holds Prometheus metrics for address validation and storage.
// A nil *AddressMetrics is valid and records nothing.
type AddressMetrics struct {
	Validations *prometheus.CounterVec
	FieldErrors *prometheus.CounterVec
	Conflicts   prometheus.Counter
	Stored      prometheus.Counter
	Replaced    prometheus.Counter
	Deleted     prometheus.Counter
}

// NewAddressMetrics creates and registers the address metrics on reg.
func NewAddressMetrics(reg prometheus.Registerer, namespace string) *AddressMetrics {
	if namespace == "" {
		namespace = "address_registry"
	}
	factory := promauto.With(reg)

	return &AddressMetrics{
		Validations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validations_total",
				Help:      "Whole-record validations by outcome",
			},
			[]string{"result"},
		),
		FieldErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "field_errors_total",
				Help:      "Rejected address fields by field and error kind",
			},
			[]string{"field", "kind"},
		),
		Conflicts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conflicts_total",
			Help:      "Writes rejected because the address already exists",
		}),
		Stored: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stored_total",
			Help:      "Addresses inserted",
		}),
		Replaced: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "replaced_total",
			Help:      "Addresses replaced",
		}),
		Deleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deleted_total",
			Help:      "Addresses deleted",
		}),
	}
}

// ObserveValidation records a validation outcome and the kinds of its field errors.
func (m *AddressMetrics) ObserveValidation(valid bool, fieldErrors map[string]string) {
	if m == nil {
		return
	}
	result := "valid"
	if !valid {
		result = "invalid"
	}
	m.Validations.WithLabelValues(result).Inc()
	for field, kind := range fieldErrors {
		m.FieldErrors.WithLabelValues(field, kind).Inc()
	}
}

// IncConflict counts a write rejected as a duplicate.
func (m *AddressMetrics) IncConflict() {
	if m != nil {
		m.Conflicts.Inc()
	}
}

// IncStored counts an inserted address.
func (m *AddressMetrics) IncStored() {
	if m != nil {
		m.Stored.Inc()
	}
}

// IncReplaced counts a replaced address.
func (m *AddressMetrics) IncReplaced() {
	if m != nil {
		m.Replaced.Inc()
	}
}

// IncDeleted counts a deleted address.
func (m *AddressMetrics) IncDeleted() {
	if m != nil {
		m.Deleted.Inc()
	}
}
