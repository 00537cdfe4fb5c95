// Package services holds the business logic between controllers and repositories.
//
// Services defined in this package:
//   - ResultService: assembles aggregate and per-semester academic results
package services
