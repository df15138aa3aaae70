// File: handlers/bundle.go
package handlers

import "visionhealth/middleware"

// HandlerBundle groups the endpoint handlers and the auth collaborators the
// routes are composed with.
type HandlerBundle struct {
	Tokens middleware.TokenVerifier
	Admins middleware.AdminChecker

	Catalog  *ServiceCatalogHandler
	Bookings *BookingHandler
	Users    *UserHandler
	Doctors  *DoctorHandler
	Payments *PaymentHandler
}
