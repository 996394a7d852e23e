package cmd

import (
	"github.com/dashgrab/dashgrab/api"
	"github.com/dashgrab/dashgrab/auth"
	"github.com/dashgrab/dashgrab/key"
	"github.com/dashgrab/dashgrab/log"
	"github.com/dashgrab/dashgrab/network"
	"github.com/spf13/viper"
)

// newClient builds the API client, signed in when a session is stored.
func newClient() *api.Client {
	client := api.New(network.Configured(), viper.GetString(key.APIBaseURL))

	session, err := auth.Session()
	if err != nil {
		log.Warnf("keyring unavailable: %s", err)
		return client
	}

	if session == "" {
		return client
	}

	return client.WithSession(session)
}
