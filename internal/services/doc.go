// Package services holds cross-cutting helpers shared by the sync pipeline and
// the remote service clients: the error taxonomy used for classification and
// the context keys that thread run identity through a pipeline run.
package services
