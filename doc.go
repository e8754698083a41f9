/*
Package logic simulates digital logic circuits built as directed graphs of
gates and wires.

A Graph owns the nodes of a circuit and the connections between their pins.
Gate values are computed on demand by a recursive evaluator that memoizes
every input pin once per tick, so feedback loops (the building block of
latches and other sequential logic) resolve deterministically instead of
recursing forever. A Simulation drives the graph on a pausable, rate
adjustable tick clock fed by a host render loop.
*/
package logic
