// Package domain contains the core entities of the credential checker:
// identities, enrichment sections, account records and batch results. The
// types are free of transport and infrastructure concerns so every layer can
// share them.
package domain
