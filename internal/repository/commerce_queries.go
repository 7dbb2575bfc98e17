package repository

const orderDetailFragment = `
fragment OrderDetail on Order {
  id
  code
  state
  active
  currencyCode
  subTotalWithTax
  shippingWithTax
  totalWithTax
  orderPlacedAt
  customer { id firstName lastName emailAddress phoneNumber }
  shippingAddress {
    fullName company streetLine1 streetLine2 city province postalCode countryCode phoneNumber
  }
  shippingLines { shippingMethod { id name } priceWithTax }
  lines {
    id
    quantity
    linePriceWithTax
    featuredAsset { preview }
    productVariant { id name }
  }
  payments { id method state amount transactionId metadata createdAt }
  customFields {
    courierCode courierName courierService shippingCost shippingEtd shippingDestinationId
  }
}
`

const addressFragment = `
fragment AddressDetail on Address {
  id fullName company streetLine1 streetLine2 city province postalCode phoneNumber
  country { code }
  defaultShippingAddress
  defaultBillingAddress
}
`

const wishlistFragment = `
fragment WishlistDetail on Wishlist {
  id
  items {
    id
    productVariant {
      id
      name
      priceWithTax
      featuredAsset { preview }
      product { name featuredAsset { preview } }
    }
  }
}
`

const loginMutation = `
mutation Login($username: String!, $password: String!, $rememberMe: Boolean) {
  login(username: $username, password: $password, rememberMe: $rememberMe) {
    __typename
    ... on CurrentUser { id identifier }
    ... on ErrorResult { errorCode message }
  }
}
`

const logoutMutation = `
mutation Logout {
  logout { success }
}
`

const activeCustomerQuery = addressFragment + `
query ActiveCustomer {
  activeCustomer {
    id firstName lastName emailAddress phoneNumber
    addresses { ...AddressDetail }
  }
}
`

const createAddressMutation = addressFragment + `
mutation CreateAddress($input: CreateAddressInput!) {
  createCustomerAddress(input: $input) { ...AddressDetail }
}
`

const updateAddressMutation = addressFragment + `
mutation UpdateAddress($input: UpdateAddressInput!) {
  updateCustomerAddress(input: $input) { ...AddressDetail }
}
`

const deleteAddressMutation = `
mutation DeleteAddress($id: ID!) {
  deleteCustomerAddress(id: $id) { success }
}
`

const customerOrdersQuery = orderDetailFragment + `
query CustomerOrders($options: OrderListOptions) {
  activeCustomer {
    orders(options: $options) {
      items { ...OrderDetail }
      totalItems
    }
  }
}
`

const orderByCodeQuery = orderDetailFragment + `
query OrderByCode($code: String!) {
  orderByCode(code: $code) { ...OrderDetail }
}
`

const activeOrderQuery = orderDetailFragment + `
query ActiveOrder {
  activeOrder { ...OrderDetail }
}
`

const setShippingAddressMutation = orderDetailFragment + `
mutation SetShippingAddress($input: CreateAddressInput!) {
  setOrderShippingAddress(input: $input) {
    __typename
    ... on Order { ...OrderDetail }
    ... on ErrorResult { errorCode message }
  }
}
`

const setOrderCustomFieldsMutation = orderDetailFragment + `
mutation SetOrderCustomFields($input: UpdateOrderInput!) {
  setOrderCustomFields(input: $input) {
    __typename
    ... on Order { ...OrderDetail }
    ... on ErrorResult { errorCode message }
  }
}
`

const wishlistQuery = wishlistFragment + `
query ActiveCustomerWishlist {
  activeCustomerWishlist { ...WishlistDetail }
}
`

const addToWishlistMutation = wishlistFragment + `
mutation AddToWishlist($productVariantId: ID!) {
  addToWishlist(productVariantId: $productVariantId) { ...WishlistDetail }
}
`

const removeFromWishlistMutation = wishlistFragment + `
mutation RemoveFromWishlist($itemId: ID!) {
  removeFromWishlist(itemId: $itemId) { ...WishlistDetail }
}
`
