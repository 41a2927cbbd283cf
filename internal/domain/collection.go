package domain

// Collection names one of the five entity collections.
type Collection string

const (
	CollectionUsers      Collection = "users"
	CollectionProperties Collection = "properties"
	CollectionContracts  Collection = "contracts"
	CollectionMessages   Collection = "messages"
	CollectionPayments   Collection = "payments"
)

// Collections lists every collection in mirror order.
var Collections = []Collection{
	CollectionUsers,
	CollectionProperties,
	CollectionContracts,
	CollectionMessages,
	CollectionPayments,
}

func (c Collection) Valid() bool {
	for _, x := range Collections {
		if x == c {
			return true
		}
	}
	return false
}
