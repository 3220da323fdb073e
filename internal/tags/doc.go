// Package tags maps namespaced directive tags to control parts, so that
// conditionals and loops can be written as structured markup:
//
//	<hc:loop iter="items" v="item"> … </hc:loop>
//	<hc:if v="!hidden"> … <hc:else/> … </hc:if>
//	<hc:if iter="items"> … </hc:if>
//
// The compiler offers every tag to a Resolver before reconstructing it as
// literal markup. Passthrough recognizes nothing.
package tags
