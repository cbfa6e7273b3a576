// Package config provides configuration parsing for the site header.
//
// The configuration is stored in siteheader.yaml at the site root. Unknown
// fields are rejected. After decoding, SITEHEADER_* environment variables
// override the server, locale, logging and publishing settings.
//
// # Configuration File Structure
//
//	locale: en-US
//	minimalHeader: false
//	identity:
//	  logo: /static/logo.svg
//	  logoAltText: Acme
//	  logoDestination: /
//	mainMenu:
//	  - href: /
//	    label: Home
//	  - type: submenu
//	    href: /programs
//	    label: Programs
//	    items:
//	      - href: /programs/data
//	        label: Data Science
//	userMenu:
//	  - href: /profile
//	    label: Profile
//	loggedOutItems:
//	  - href: /signin
//	    label: Sign in
//	  - href: /register
//	    label: Register
//	server:
//	  address: localhost:8080
//	  avatarURL: https://avatars.example.com/{username}.png
//	log:
//	  level: info
//	  format: json
//	publish:
//	  bucket: acme-fragments
//	  paths: [/, /programs]
//	  locales: [en-US, fr-FR]
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	d, err := header.NewDesktop(cfg.Props(), header.Env{Settings: cfg.Settings()})
package config
