// Package adminctl manages the admin accounts of the e-commerce admin app.
//
// Admin access in the app requires two things: a Firebase Authentication
// user carrying the "admin" custom claim, and a record at Admins/<uid> in
// the Realtime Database with isAdmin set. adminctl creates both and helps
// find the usual failure, a record whose key is not the user's Auth UID.
//
// # Installation
//
//	go install github.com/ecommerce-adminapp/adminctl/cmd/adminctl@latest
//
// # Quick Start
//
//	adminctl create        # create or claim the admin accounts
//	adminctl check-uid     # print admin-data.json and the mismatch checklist
//	adminctl import        # push admin-data.json into the database
//	adminctl status
//
// Configuration comes from flags, ADMINCTL_* environment variables (a .env
// file is loaded first), config.yaml in $HOME/.adminctl or the working
// directory, and built-in defaults, in that order.
package adminctl
