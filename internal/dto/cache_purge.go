package dto

type CachePurgeResponse struct {
	Success    bool  `json:"success"`
	PurgedKeys int64 `json:"purgedKeys"`
}
