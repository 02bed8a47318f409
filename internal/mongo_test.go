package internal

import (
	"github.com/stretchr/testify/require"
	"ima/config"
	"testing"
)

func TestNewMongoClient(t *testing.T) {
	conf := &config.Config{}
	client, err := NewMongoClient(conf)
	require.NoError(t, err)
	require.Nil(t, client)

	conf.Mongo.Enabled = true
	_, err = NewMongoClient(conf)
	require.Error(t, err)

	conf.Mongo.Host = "127.0.0.1"
	conf.Mongo.Port = "27017"
	conf.Mongo.Database = "ima"
	conf.Mongo.User = "ima"
	conf.LogRecords = 100
	client, err = NewMongoClient(conf)
	require.NoError(t, err)
	require.Equal(t, "ima", client.database)
	require.Equal(t, int64(100), client.logRecordsNumber)
	require.NotNil(t, client.clientOptions.Auth)
}
