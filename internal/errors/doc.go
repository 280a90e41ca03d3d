// Package errors provides the structured error type used across the seeder.
//
// Every error carries a Code so callers branch on kind instead of matching
// message text:
//   - CONFIG: the local moves catalog or process configuration is unusable
//   - DATA_SHAPE: an upstream response decoded but is missing what we need
//   - UPSTREAM: an HTTP call returned a non-success status
//
// Upstream errors always carry the HTTP status in metadata:
//
//	err := errors.Upstreamf(resp.StatusCode, "creature lookup failed").
//	    WithMeta(errors.MetaCreatureID, id)
//
//	if errors.IsUpstream(err) && errors.GetStatus(err) == http.StatusNotFound {
//	    // ...
//	}
//
// Wrap keeps the code of the wrapped error, so context can be added at each
// layer without losing the kind:
//
//	if err := loader.Load(ctx); err != nil {
//	    return errors.Wrap(err, "failed to load moves catalog")
//	}
//
// Config structs validate themselves with the ValidationBuilder:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateHTTPURL("StoreURL", cfg.StoreURL, vb)
//	errors.ValidateMin("InsertCount", cfg.InsertCount, 1, vb)
//	return vb.Build()
package errors
