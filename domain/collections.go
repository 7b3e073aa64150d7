package domain

const (
	CollectionUser = "discovery_auth_users"
)

const (
	CollectionCatalogSong = "discovery_catalog_song"
)

const (
	CollectionGameSession = "discovery_game_session"
)

const (
	CollectionVectorTable = "discovery_vector_table"
)
