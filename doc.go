// Package parks implements a two-tier national parks system: a JSON REST
// API that exposes national parks, trails, and users over bun persistence
// and issues JWT bearer tokens, plus a server-rendered web client that
// consumes that API through a generic typed resource client.
//
// The root package holds the domain models, the token issuer, the
// credential provider, and the bun repositories. Transport concerns live
// in subpackages:
//
//   - api: REST controllers and route registration for the API tier.
//   - client: the web tier's generic HTTP resource client with bearer
//     token propagation and distinguishable error kinds.
//   - webapp: session-to-token bridge and server-rendered pages.
//   - middleware/jwtware: bearer token validation for protected routes.
package parks
