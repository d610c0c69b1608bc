// Package signature reads serving signature documents into field descriptors.
//
// Two document shapes are understood. The flat shape lists the serving fields
// directly:
//
//	fields:
//	  - name: query
//	    required: true
//	  - name: user_id
//	    dtype: int64
//
// The feature-config shape is the one the ml4ir training pipeline writes. Only
// features carrying a serving_info block take part in the serving signature,
// under the serving name (or the feature name when the serving name is blank):
//
//	query_key:
//	  name: query_id
//	  serving_info: {name: query_id, required: true}
//	features:
//	  - name: query_text
//	    dtype: string
//	    serving_info: {name: query, required: true}
//
// Documents may be written in YAML, JSON or TOML.
package signature
