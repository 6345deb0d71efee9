package models

// UpdatePool exports updatePool for tests.
var UpdatePool = updatePool
