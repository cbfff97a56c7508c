package domain

const (
	AssetTopic       = "asset_events"
	UniqueAssetTopic = "unique_asset_events"
)

type EventType int

const (
	EventTypeUndefined EventType = iota
	EventTypeAssetCreated
	EventTypeAssetMetadataSet
	EventTypeAssetMinted
	EventTypeAssetBurned
	EventTypeAssetTransferred
	EventTypeUniqueAssetCreated
	EventTypeUniqueAssetBurned
	EventTypeUniqueAssetTransferred
)

// Event is a structured notification of a completed state transition.
// Events are delivered to the sink in emission order, and only for
// commands whose transaction committed.
type Event interface {
	GetType() EventType
	GetAssetId() AssetId
}

// AssetCreated is emitted by the fungible create command. Id is the
// uuid correlating every event of one command execution.
type AssetCreated struct {
	Id      string
	AssetId AssetId
	Owner   AccountId
}

func (e AssetCreated) GetType() EventType  { return EventTypeAssetCreated }
func (e AssetCreated) GetAssetId() AssetId { return e.AssetId }

type AssetMetadataSet struct {
	Id      string
	AssetId AssetId
	Name    []byte
	Symbol  []byte
}

func (e AssetMetadataSet) GetType() EventType  { return EventTypeAssetMetadataSet }
func (e AssetMetadataSet) GetAssetId() AssetId { return e.AssetId }

// AssetMinted reports the recipient of the mint as Owner and the supply
// after the command.
type AssetMinted struct {
	Id          string
	AssetId     AssetId
	Owner       AccountId
	TotalSupply Amount
}

func (e AssetMinted) GetType() EventType  { return EventTypeAssetMinted }
func (e AssetMinted) GetAssetId() AssetId { return e.AssetId }

type AssetBurned struct {
	Id          string
	AssetId     AssetId
	Owner       AccountId
	TotalSupply Amount
}

func (e AssetBurned) GetType() EventType  { return EventTypeAssetBurned }
func (e AssetBurned) GetAssetId() AssetId { return e.AssetId }

// AssetTransferred reports the amount actually moved, which may be
// smaller than the requested amount when the sender balance clamped it.
type AssetTransferred struct {
	Id      string
	AssetId AssetId
	From    AccountId
	To      AccountId
	Amount  Amount
}

func (e AssetTransferred) GetType() EventType  { return EventTypeAssetTransferred }
func (e AssetTransferred) GetAssetId() AssetId { return e.AssetId }

type UniqueAssetCreated struct {
	Id      string
	AssetId AssetId
	Creator AccountId
}

func (e UniqueAssetCreated) GetType() EventType  { return EventTypeUniqueAssetCreated }
func (e UniqueAssetCreated) GetAssetId() AssetId { return e.AssetId }

type UniqueAssetBurned struct {
	Id          string
	AssetId     AssetId
	Owner       AccountId
	TotalSupply Amount
}

func (e UniqueAssetBurned) GetType() EventType  { return EventTypeUniqueAssetBurned }
func (e UniqueAssetBurned) GetAssetId() AssetId { return e.AssetId }

type UniqueAssetTransferred struct {
	Id      string
	AssetId AssetId
	From    AccountId
	To      AccountId
	Amount  Amount
}

func (e UniqueAssetTransferred) GetType() EventType  { return EventTypeUniqueAssetTransferred }
func (e UniqueAssetTransferred) GetAssetId() AssetId { return e.AssetId }
