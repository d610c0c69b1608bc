/*
Package observability exports gate activity as Prometheus metrics.

Metrics are registered on a caller-provided prometheus.Registerer; nothing is
served over the network. Use Dump to write the gathered families in the
Prometheus text format.

# Metrics

  - ml4ir_validations_total{model,outcome}: validations by outcome (accepted, rejected).
  - ml4ir_violations_total{model,kind}: violations by kind (missing_required, unknown_field).
  - ml4ir_validation_duration_seconds{model}: validation latency.
  - ml4ir_signature_reloads_total{model,result}: signature loads by result.
  - ml4ir_signature_fields{model,required}: declared fields of the published signature.
*/
package observability
