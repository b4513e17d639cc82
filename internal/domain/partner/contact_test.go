package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactBaseName(t *testing.T) {
	links := Links{{LinkDoctype: DocTypeCustomer, LinkName: "_Test Customer"}}

	contact, err := NewContact(uuid.New(), "_Test Contact for _Test Customer", "", links)
	require.NoError(t, err)

	assert.Equal(t, "_Test Contact for _Test Customer", contact.FullName())
	assert.Equal(t, "_Test Contact for _Test Customer-_Test Customer", ContactBaseName(contact))

	unlinked, err := NewContact(uuid.New(), "Jane", "Doe", nil)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", ContactBaseName(unlinked))
}

func TestContact_SetDetails(t *testing.T) {
	contact, err := NewContact(uuid.New(), "Jane", "", nil)
	require.NoError(t, err)

	t.Run("stores lower-cased email", func(t *testing.T) {
		err := contact.SetDetails(ContactDetails{EmailID: "Test_Contact_Customer@Example.com", Phone: "+91 0000000000"})

		require.NoError(t, err)
		assert.Equal(t, "test_contact_customer@example.com", contact.EmailID)
		assert.Equal(t, "+91 0000000000", contact.Phone)
	})

	t.Run("rejects bad email", func(t *testing.T) {
		assert.Error(t, contact.SetDetails(ContactDetails{EmailID: "nope"}))
	})

	t.Run("rejects bad phone", func(t *testing.T) {
		assert.Error(t, contact.SetDetails(ContactDetails{MobileNo: "call me"}))
	})
}

func TestNewContact_Validation(t *testing.T) {
	_, err := NewContact(uuid.New(), " ", "Doe", nil)
	assert.Error(t, err)

	_, err = NewContact(uuid.New(), "Jane", "", Links{{LinkDoctype: DocTypeCustomer}})
	assert.Error(t, err)
}

func TestLinks(t *testing.T) {
	links := Links{
		{LinkDoctype: DocTypeCustomer, LinkName: "A"},
		{LinkDoctype: DocTypeCustomer, LinkName: "B"},
	}

	assert.True(t, links.Has(DocTypeCustomer, "B"))
	assert.False(t, links.Has("Supplier", "B"))
	assert.Equal(t, Links{{LinkDoctype: DocTypeCustomer, LinkName: "B"}}, links.Without(DocTypeCustomer, "A"))
	assert.Equal(t, "A", links.FirstName())
	assert.Equal(t, "", Links{}.FirstName())
}

func TestAddress(t *testing.T) {
	links := Links{{LinkDoctype: DocTypeCustomer, LinkName: "_Test Customer"}}
	lines := AddressLines{AddressLine1: "_Test Address Line 1", City: "_Test City", State: "Test State", Country: "India"}

	t.Run("names by title and type", func(t *testing.T) {
		address, err := NewAddress(uuid.New(), "_Test Address for Customer", AddressTypeOffice, lines, links)

		require.NoError(t, err)
		assert.Equal(t, "_Test Address for Customer-Office", AddressBaseName(address))
		assert.False(t, address.IsShippingAddress)
	})

	t.Run("defaults title to link and type to billing", func(t *testing.T) {
		address, err := NewAddress(uuid.New(), "", "", lines, links)

		require.NoError(t, err)
		assert.Equal(t, "_Test Customer-Billing", AddressBaseName(address))
	})

	t.Run("shipping type marks shipping address", func(t *testing.T) {
		address, err := NewAddress(uuid.New(), "Dock", AddressTypeShipping, lines, links)

		require.NoError(t, err)
		assert.True(t, address.IsShippingAddress)
	})

	t.Run("requires city", func(t *testing.T) {
		_, err := NewAddress(uuid.New(), "X", AddressTypeOffice, AddressLines{AddressLine1: "1", Country: "India"}, nil)
		assert.Contains(t, err.Error(), "City")
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewAddress(uuid.New(), "X", AddressType("Moon"), lines, nil)
		assert.Error(t, err)
	})

	t.Run("renders display", func(t *testing.T) {
		address, err := NewAddress(uuid.New(), "X", AddressTypeOffice, lines, nil)
		require.NoError(t, err)
		require.NoError(t, address.SetReachability("+91 0000000000", ""))

		assert.Equal(t, "_Test Address Line 1\n_Test City\nTest State\nIndia\nPhone: +91 0000000000\n", address.Display())
	})
}

func TestNewComment(t *testing.T) {
	comment, err := NewComment(uuid.New(), CommentTypeComment, DocTypeCustomer, "_Test Customer 1", " Test Comment for Rename ", "Administrator")

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, comment.ID)
	assert.Equal(t, "Test Comment for Rename", comment.Content)

	_, err = NewComment(uuid.New(), CommentType("Like"), DocTypeCustomer, "X", "hi", "")
	assert.Error(t, err)

	_, err = NewComment(uuid.New(), CommentTypeInfo, DocTypeCustomer, "", "hi", "")
	assert.Error(t, err)

	_, err = NewComment(uuid.New(), CommentTypeInfo, DocTypeCustomer, "X", "  ", "")
	assert.Error(t, err)
}
